package handlers

import (
	"net/http"

	"cooklog/db"
	"cooklog/models"
	"cooklog/push"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type GroceryListSaveRequest struct {
	ID   uint64 `json:"id"` // 0 for a new list
	Name string `json:"name" binding:"required"`
}

type GroceryListDeleteRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

type GroceryItemSaveRequest struct {
	ID       uint64 `json:"id"` // 0 for a new item
	ListID   uint64 `json:"list" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity"`
	Done     bool   `json:"done"`
	Position uint16 `json:"position"`
}

type GroceryItemDeleteRequest struct {
	ID     uint64 `json:"id" binding:"required"`
	ListID uint64 `json:"list" binding:"required"`
}

type GroceryItemInfo struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Done     bool   `json:"done"`
	Position uint16 `json:"position"`
}

type GroceryListInfo struct {
	ID    uint64            `json:"id"`
	Name  string            `json:"name"`
	Items []GroceryItemInfo `json:"items"`
}

// loadOwnList ensures the list exists and belongs to the user
func loadOwnList(c *gin.Context, user *models.User, listID uint64) *models.GroceryList {
	list := models.GroceryList{}
	if db.Instance.First(&list, listID).Error != nil || list.UserID != user.ID || list.Deleted {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return nil
	}
	return &list
}

func GroceryListSave(c *gin.Context, user *models.User) {
	r := GroceryListSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	list := models.GroceryList{}
	if r.ID > 0 {
		if loadOwnList(c, user, r.ID) == nil {
			return
		}
		list.ID = r.ID
	}
	list.UserID = user.ID
	list.Name = r.Name
	if db.Instance.Save(&list).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	broadcastGroceryUpdate(user.ID, list.ID)
	go push.GroceryUpdated(list.ID, user)
	c.JSON(http.StatusOK, gin.H{"error": "", "id": list.ID})
}

func GroceryListDelete(c *gin.Context, user *models.User) {
	r := GroceryListDeleteRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	list := loadOwnList(c, user, r.ID)
	if list == nil {
		return
	}
	list.Deleted = true
	if db.Instance.Save(list).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	broadcastGroceryUpdate(user.ID, list.ID)
	go push.GroceryUpdated(list.ID, user)
	c.JSON(http.StatusOK, OKResponse)
}

func GroceryLists(c *gin.Context, user *models.User) {
	lists := []models.GroceryList{}
	if db.Instance.Preload("Items").
		Where("user_id = ? AND deleted = 0", user.ID).
		Order("created_at DESC").Find(&lists).Error != nil {

		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []GroceryListInfo{}
	for i := range lists {
		info := GroceryListInfo{ID: lists[i].ID, Name: lists[i].Name, Items: []GroceryItemInfo{}}
		for _, item := range lists[i].Items {
			info.Items = append(info.Items, GroceryItemInfo{
				ID:       item.ID,
				Name:     item.Name,
				Quantity: item.Quantity,
				Done:     item.Done,
				Position: item.Position,
			})
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func GroceryItemSave(c *gin.Context, user *models.User) {
	r := GroceryItemSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if loadOwnList(c, user, r.ListID) == nil {
		return
	}
	item := models.GroceryItem{}
	if r.ID > 0 {
		if db.Instance.First(&item, r.ID).Error != nil || item.GroceryListID != r.ListID {
			c.JSON(http.StatusUnauthorized, Nope2Response)
			return
		}
	}
	item.GroceryListID = r.ListID
	item.Name = r.Name
	item.Quantity = r.Quantity
	item.Done = r.Done
	item.Position = r.Position
	if db.Instance.Save(&item).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	broadcastGroceryUpdate(user.ID, r.ListID)
	go push.GroceryUpdated(r.ListID, user)
	c.JSON(http.StatusOK, gin.H{"error": "", "id": item.ID})
}

func GroceryItemDelete(c *gin.Context, user *models.User) {
	r := GroceryItemDeleteRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if loadOwnList(c, user, r.ListID) == nil {
		return
	}
	if db.Instance.Delete(&models.GroceryItem{}, "id = ? AND grocery_list_id = ?", r.ID, r.ListID).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	broadcastGroceryUpdate(user.ID, r.ListID)
	go push.GroceryUpdated(r.ListID, user)
	c.JSON(http.StatusOK, OKResponse)
}
