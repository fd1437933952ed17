package models

import (
	"math/rand"
	"time"

	"cooklog/db"
)

func Init() {
	// Seed the random number generator - required for User.Salt
	rand.Seed(time.Now().UnixNano())

	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Grant{})
	db.Instance.AutoMigrate(&Invitation{})
	db.Instance.AutoMigrate(&Place{})
	db.Instance.AutoMigrate(&Location{})
	db.Instance.AutoMigrate(&Post{})
	db.Instance.AutoMigrate(&Photo{})
	db.Instance.AutoMigrate(&Participant{})
	db.Instance.AutoMigrate(&Comment{})
	db.Instance.AutoMigrate(&Like{})
	db.Instance.AutoMigrate(&PostShare{})
	db.Instance.AutoMigrate(&GroceryList{})
	db.Instance.AutoMigrate(&GroceryItem{})
}
