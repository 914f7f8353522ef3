package handler

import "github.com/gin-gonic/gin"

// LendingHandlers 出借服务的处理器集合
type LendingHandlers struct {
	Games         *GameHandler
	Friends       *FriendHandler
	Loans         *LoanHandler
	GameExports   *ExportHandler
	FriendExports *ExportHandler
	LoanExports   *ExportHandler
}

// RegisterLendingRoutes 挂载出借服务路由
// 每个实体提供CRUD、行数、过滤和四种导出，静态子路径先于:id注册
func RegisterLendingRoutes(r *gin.Engine, h LendingHandlers) {
	games := r.Group("/games")
	{
		games.POST("/", h.Games.Create)
		games.GET("/", h.Games.List)
		games.GET("/count", h.Games.Count)
		games.GET("/filter", h.Games.Filter)
		games.GET("/zip", h.GameExports.Zip)
		games.GET("/hash", h.GameExports.Hash)
		games.GET("/xml", h.GameExports.XML)
		games.GET("/xlsx", h.GameExports.XLSX)
		games.GET("/:id", h.Games.Get)
		games.PUT("/:id", h.Games.Update)
		games.DELETE("/:id", h.Games.Delete)
	}

	friends := r.Group("/friends")
	{
		friends.POST("/", h.Friends.Create)
		friends.GET("/", h.Friends.List)
		friends.GET("/count", h.Friends.Count)
		friends.GET("/filter", h.Friends.Filter)
		friends.GET("/zip", h.FriendExports.Zip)
		friends.GET("/hash", h.FriendExports.Hash)
		friends.GET("/xml", h.FriendExports.XML)
		friends.GET("/xlsx", h.FriendExports.XLSX)
		friends.GET("/:id", h.Friends.Get)
		friends.PUT("/:id", h.Friends.Update)
		friends.DELETE("/:id", h.Friends.Delete)
	}

	loans := r.Group("/loans")
	{
		loans.POST("/", h.Loans.Create)
		loans.GET("/", h.Loans.List)
		loans.GET("/count", h.Loans.Count)
		loans.GET("/filter", h.Loans.Filter)
		loans.GET("/zip", h.LoanExports.Zip)
		loans.GET("/hash", h.LoanExports.Hash)
		loans.GET("/xml", h.LoanExports.XML)
		loans.GET("/xlsx", h.LoanExports.XLSX)
		loans.GET("/:id", h.Loans.Get)
		loans.PUT("/:id", h.Loans.Update)
		loans.DELETE("/:id", h.Loans.Delete)
	}
}

// BlogHandlers 博客服务的处理器集合
type BlogHandlers struct {
	Users      *UserHandler
	Posts      *PostHandler
	Comments   *CommentHandler
	Categories *CategoryHandler
	Likes      *LikeHandler
}

// RegisterBlogRoutes 挂载博客服务路由，更新一律为PATCH部分更新
func RegisterBlogRoutes(r *gin.Engine, h BlogHandlers) {
	users := r.Group("/users")
	{
		users.POST("/", h.Users.Create)
		users.GET("/", h.Users.List)
		users.GET("/count", h.Users.Count)
		users.GET("/:id", h.Users.Get)
		users.PATCH("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	posts := r.Group("/posts")
	{
		posts.POST("/", h.Posts.Create)
		posts.GET("/", h.Posts.List)
		posts.GET("/count", h.Posts.Count)
		posts.GET("/:id", h.Posts.Get)
		posts.PATCH("/:id", h.Posts.Update)
		posts.DELETE("/:id", h.Posts.Delete)
	}

	comments := r.Group("/comments")
	{
		comments.POST("/", h.Comments.Create)
		comments.GET("/", h.Comments.List)
		comments.GET("/count", h.Comments.Count)
		comments.GET("/:id", h.Comments.Get)
		comments.PATCH("/:id", h.Comments.Update)
		comments.DELETE("/:id", h.Comments.Delete)
	}

	categories := r.Group("/categories")
	{
		categories.POST("/", h.Categories.Create)
		categories.GET("/", h.Categories.List)
		categories.GET("/count", h.Categories.Count)
		categories.GET("/:id", h.Categories.Get)
		categories.PATCH("/:id", h.Categories.Update)
		categories.DELETE("/:id", h.Categories.Delete)
	}

	likes := r.Group("/likes")
	{
		likes.POST("/", h.Likes.Create)
		likes.GET("/", h.Likes.List)
		likes.GET("/count", h.Likes.Count)
		likes.GET("/:id", h.Likes.Get)
		likes.PATCH("/:id", h.Likes.Update)
		likes.DELETE("/:id", h.Likes.Delete)
	}
}
