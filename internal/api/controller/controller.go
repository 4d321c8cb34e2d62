package controller

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/ougirez/hcdash/internal/pkg/store"
	"github.com/ougirez/hcdash/internal/service/narrative"
	"github.com/ougirez/hcdash/internal/service/session"
)

type Controller struct {
	store     store.Store
	narrative *narrative.Service
	sessions  *session.Service
}

func NewController(store store.Store, narrative *narrative.Service, sessions *session.Service) *Controller {
	return &Controller{store: store, narrative: narrative, sessions: sessions}
}

func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func sessionID(ctx echo.Context) uuid.UUID {
	id, _ := ctx.Get(constants.CtxKeySessionID).(uuid.UUID)
	return id
}

func fileIndex(ctx echo.Context) (int, error) {
	idx, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return 0, constants.ErrFileNotFound
	}
	return idx, nil
}
