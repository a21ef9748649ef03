package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) alert(c *gin.Context, entity, action, param string) {
	c.Header("X-"+h.appName+"-alert", h.appName+"."+entity+"."+action)
	c.Header("X-"+h.appName+"-params", param)
}

func (h *Handler) badRequest(c *gin.Context, entity, key, title string, fields []domain.FieldError) {
	c.Header("X-"+h.appName+"-error", "error."+key)
	c.Header("X-"+h.appName+"-params", entity)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Title:       title,
		Status:      http.StatusBadRequest,
		EntityName:  entity,
		ErrorKey:    key,
		Message:     "error." + key,
		FieldErrors: fields,
	})
}

func (h *Handler) notFound(c *gin.Context, entity string) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
		Title:      "Not Found",
		Status:     http.StatusNotFound,
		EntityName: entity,
		ErrorKey:   "notfound",
		Message:    "error.http.404",
	})
}

// writeError maps service errors onto responses. Unknown errors are logged
// and answered with 500.
func (h *Handler) writeError(c *gin.Context, entity string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrIDExists):
		h.badRequest(c, entity, "idexists", fmt.Sprintf("A new %s cannot already have an ID", entity), nil)
	case errors.Is(err, domain.ErrIDNull):
		h.badRequest(c, entity, "idnull", "Invalid id", nil)
	case errors.As(err, &verr):
		h.badRequest(c, entity, "validation", "Method argument not valid", verr.Fields)
	case errors.Is(err, domain.ErrCustomerNotFound):
		h.badRequest(c, entity, "customernotfound", "Customer does not exist", nil)
	case errors.Is(err, domain.ErrProductOrderNotFound):
		h.notFound(c, entity)
	case errors.Is(err, pagination.ErrInvalidSortProperty):
		h.badRequest(c, entity, "badsort", err.Error(), nil)
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Title:   "Internal Server Error",
			Status:  http.StatusInternalServerError,
			Message: "error.http.500",
		})
	}
}

// bindError answers a body that could not be decoded or failed its binding
// tags.
func (h *Handler) bindError(c *gin.Context, entity string, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		h.badRequest(c, entity, "http.400", "Bad Request", nil)
		return
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	h.badRequest(c, entity, "validation", "Method argument not valid", fields)
}

// fieldPath drops the struct name from the namespace: "customer.id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a well-formed email address"
	}
	return "failed on " + fe.Tag()
}
