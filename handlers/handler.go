package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"food-storefront/accounts"
	"food-storefront/apperr"
	"food-storefront/catalog"
	"food-storefront/middleware"
	"food-storefront/orders"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler carries the services every route delegates to.
type Handler struct {
	Orders   *orders.Access
	Quoter   *orders.Quoter
	Catalog  *catalog.Catalog
	Accounts *accounts.Accounts
	Auth     *middleware.Auth
}

// respondError maps a service failure to its status code. Unexpected errors
// are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "Server error"
	}
	c.JSON(status, gin.H{"success": false, "message": msg})
}

// bindJSON decodes the body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperr.Validation("%s", describeBindError(err)))
		return false
	}
	return true
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Namespace()+" is required")
		case "email":
			msgs = append(msgs, fe.Namespace()+" must be a valid email")
		default:
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(msgs, "; ")
}
