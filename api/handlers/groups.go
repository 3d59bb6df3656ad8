package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GroupCreate создает группу и перенаправляет на ее страницу.
// Slug нормализуется из заголовка, если не передан явно.
func GroupCreate(c *gin.Context) {
	if _, ok := authedUserID(c); !ok {
		return
	}

	group, err := groupService.CreateGroup(
		c.Request.Context(),
		c.PostForm("title"),
		c.PostForm("slug"),
		c.PostForm("description"),
	)
	if err != nil {
		if validationErrors(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.Redirect(http.StatusFound, "/group/"+group.Slug+"/")
}
