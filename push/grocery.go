package push

import (
	"log"
	"strconv"

	"cooklog/config"
	"cooklog/db"
	"cooklog/models"
)

// GroceryUpdated notifies the owner's devices that a list changed. Open apps
// get the websocket broadcast; this reaches the ones in the background.
func GroceryUpdated(listID uint64, owner *models.User) {
	if config.PUSH_SERVER == "" || owner.PushToken == "" {
		return
	}
	list := models.GroceryList{}
	if db.Instance.First(&list, listID).Error != nil {
		log.Print("Cannot find grocery list?")
		return
	}
	notification := Notification{
		Title: list.Name,
		Body:  "Grocery list updated",
		Data: map[string]string{
			"type": NotificationTypeGrocery,
			"list": strconv.Itoa(int(listID)),
		},
	}
	notification.SendTo([]string{owner.PushToken})
}
