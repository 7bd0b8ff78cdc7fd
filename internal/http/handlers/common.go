package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adminconsole/internal/config"
	"adminconsole/internal/query"
	"adminconsole/internal/repositories"
	"adminconsole/internal/services"
)

// RespondError writes a uniform error envelope.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// RespondList writes the standard paginated envelope.
func RespondList(c *gin.Context, items any, p query.Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": p,
	})
}

// BindJSONOrError binds the request body into dst, writing a 400 and
// returning false on malformed input.
func BindJSONOrError(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// PathID parses the :id path parameter.
func PathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// ListQuery parses pagination, search, sort and filter parameters.
func ListQuery(c *gin.Context) query.State {
	return query.Parse(c.Request.URL.Query())
}

func contactRepo() repositories.ContactRepository {
	return repositories.ContactRepository{DB: config.DB}
}

func userRepo() repositories.UserRepository {
	return repositories.UserRepository{DB: config.DB}
}

func roleRepo() repositories.RoleRepository {
	return repositories.RoleRepository{DB: config.DB}
}

func permissionRepo() repositories.PermissionRepository {
	return repositories.PermissionRepository{DB: config.DB}
}

func categoryRepo() repositories.CategoryRepository {
	return repositories.CategoryRepository{DB: config.DB}
}

func auditRepo() repositories.AuditRepository {
	return repositories.AuditRepository{DB: config.DB}
}

func auditService() services.AuditService {
	return services.AuditService{Repo: auditRepo()}
}

func exportService() services.ExportService {
	return services.ExportService{AuditRepo: auditRepo()}
}
