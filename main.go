package main

import (
	"log"
	"strings"
	"time"

	"cooklog/auth"
	"cooklog/cache"
	"cooklog/config"
	"cooklog/db"
	"cooklog/gallery"
	"cooklog/handlers"
	"cooklog/locations"
	"cooklog/models"
	"cooklog/processing"
	"cooklog/storage"
	"cooklog/utils"
	"cooklog/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	// Shared dimension cache is optional, single instances run fine without it
	var shared gallery.SharedCache
	if config.REDIS_ADDR != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.REDIS_ADDR,
			Password: config.REDIS_PASSWORD,
		})
		shared = cache.NewCache("gallery", client)
	}
	handlers.InitGallery(shared)

	go processing.StartProcessing()
	go locations.StartProcessing()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/photo"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/login", handlers.UserLogin)
	router.POST("/user/create", handlers.UserCreate) // First user, or with invitation token
	router.GET("/user/permissions", handlers.UserGetPermissions)
	router.POST("/user/logout", handlers.UserLogout)
	authRouter.GET("/user/list", handlers.UserList)
	authRouter.POST("/user/invite", handlers.InvitationCreate, models.PermissionCanInvite)
	// Post handlers
	authRouter.GET("/post/list", handlers.PostList)
	authRouter.POST("/post/save", handlers.PostSave, models.PermissionPostCreate)
	authRouter.POST("/post/delete", handlers.PostDelete, models.PermissionPostCreate)
	// Gallery handlers
	authRouter.GET("/post/gallery", handlers.PostGallery)
	authRouter.POST("/post/gallery/active", handlers.PostGalleryActive)
	// Photo handlers
	authRouter.POST("/photo/meta-data", handlers.PhotoMetaData, models.PermissionPostCreate)
	authRouter.PUT("/photo/upload", handlers.PhotoUpload, models.PermissionPostCreate)
	authRouter.POST("/photo/confirm", handlers.PhotoConfirm, models.PermissionPostCreate)
	authRouter.GET("/photo/list", handlers.PhotoList)
	authRouter.POST("/photo/save", handlers.PhotoSave, models.PermissionPostCreate)
	authRouter.POST("/photo/delete", handlers.PhotoDelete, models.PermissionPostCreate)
	authRouter.GET("/photo", handlers.PhotoFetch)
	// Participants
	authRouter.POST("/participant/add", handlers.ParticipantAdd, models.PermissionPostCreate)
	authRouter.POST("/participant/remove", handlers.ParticipantRemove)
	authRouter.GET("/participant/list", handlers.ParticipantList)
	// Comments and likes
	authRouter.POST("/comment/create", handlers.CommentCreate)
	authRouter.POST("/comment/delete", handlers.CommentDelete)
	authRouter.GET("/comment/list", handlers.CommentList)
	authRouter.POST("/like", handlers.LikeCreate)
	authRouter.POST("/unlike", handlers.LikeDelete)
	authRouter.GET("/like/list", handlers.LikeList)
	// Meal calendar
	authRouter.GET("/calendar", handlers.CalendarList)
	// Grocery lists
	authRouter.GET("/grocery/lists", handlers.GroceryLists)
	authRouter.POST("/grocery/list/save", handlers.GroceryListSave, models.PermissionPostCreate)
	authRouter.POST("/grocery/list/delete", handlers.GroceryListDelete, models.PermissionPostCreate)
	authRouter.POST("/grocery/item/save", handlers.GroceryItemSave, models.PermissionPostCreate)
	authRouter.POST("/grocery/item/delete", handlers.GroceryItemDelete, models.PermissionPostCreate)
	authRouter.GET("/grocery/ws", handlers.WebSocket)
	// Sharing
	authRouter.POST("/post/share", handlers.PostShareCreate, models.PermissionPostCreate)
	// Bucket handlers
	authRouter.GET("/bucket/list", handlers.BucketList, models.PermissionAdmin)
	authRouter.POST("/bucket/save", handlers.BucketSave, models.PermissionAdmin)

	/*
	 *	Web interface
	 */
	router.GET("/w/post/:token/", web.PostView)
	router.GET("/w/post/:token/photo", web.PostPhotoView)
	// Misc
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
