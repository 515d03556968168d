package devserver

import (
	"log/slog"
	"net/http"

	"evently-client/internal/shared/middleware"
	"evently-client/internal/shared/utils/response"
	"evently-client/pkg/logger"

	"github.com/gin-gonic/gin"
)

type graphQLRequest struct {
	Query     string                 `json:"query" binding:"required"`
	Variables map[string]interface{} `json:"variables"`
}

type Controller struct {
	resolvers *Resolvers
	log       *logger.Logger
}

func NewController(resolvers *Resolvers, log *logger.Logger) *Controller {
	return &Controller{resolvers: resolvers, log: log}
}

// GraphQL executes one document. A resolver failure yields null data with
// status 500; malformed requests and unknown fields yield 400.
func (ctl *Controller) GraphQL(c *gin.Context) {
	var req graphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErrors(c, http.StatusBadRequest, "", "Must provide query string.")
		return
	}

	field, ok := operationField(req.Query)
	if !ok {
		response.RespondErrors(c, http.StatusBadRequest, "", "Syntax Error: could not find the root field.")
		return
	}

	resolve, ok := ctl.resolvers.lookup(field)
	if !ok {
		response.RespondErrors(c, http.StatusBadRequest, field, "Cannot query field \""+field+"\".")
		return
	}

	userID, authenticated := middleware.UserID(c)
	result, err := resolve(c.Request.Context(), resolveRequest{
		vars:          req.Variables,
		userID:        userID,
		authenticated: authenticated,
	})
	if err != nil {
		message, known := clientMessage(err)
		if known {
			ctl.log.WarnContext(c.Request.Context(), "resolver failed",
				slog.String("field", field),
				slog.String("error", err.Error()),
			)
		} else {
			ctl.log.ErrorWithContext(c.Request.Context(), "resolver failed unexpectedly", err, map[string]interface{}{
				"field": field,
			})
		}
		response.RespondErrors(c, http.StatusInternalServerError, field, message)
		return
	}

	response.RespondData(c, field, result)
}
