package flower

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) plantOp() huma.Operation {
	return huma.Operation{
		OperationID:   "flowers-plant",
		Method:        http.MethodPost,
		Path:          "/api/v1/flowers",
		Summary:       "Plant a flower",
		Description:   "Classifies the message into a flower species via the AI gateway and plants it in the shared garden.",
		Tags:          []string{"flowers"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "flowers-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/flowers",
		Summary:     "List the garden",
		Description: "Returns every planted flower ordered by creation time ascending.",
		Tags:        []string{"flowers"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) statsOp() huma.Operation {
	return huma.Operation{
		OperationID: "flowers-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/flowers/stats",
		Summary:     "Garden statistics",
		Description: "Returns totals by visual type, distinct countries and the most recent planting time.",
		Tags:        []string{"flowers"},
		Middlewares: h.middleware,
	}
}
