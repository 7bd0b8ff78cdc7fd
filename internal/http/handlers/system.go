package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/config"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBCheck pings the database so load balancers can tell a wedged pool
// apart from a healthy one.
func DBCheck(c *gin.Context) {
	if err := config.EnsureDB(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
