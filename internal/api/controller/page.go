package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/ougirez/hcdash/internal/pkg/logger"
)

type pageData struct {
	Session   *domain.SessionSnapshot
	Hospitals []domain.HospitalOption
	Selected  *domain.HospitalOption
}

func (c *Controller) Index(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	snap, err := c.sessions.Present(reqCtx, sessionID(ctx))
	if err != nil {
		return err
	}

	hospitals, err := c.store.ListHospitals(reqCtx)
	if err != nil {
		return err
	}

	data := pageData{Session: snap}
	for _, h := range hospitals {
		opt := domain.HospitalOption{ID: h.ID, Label: h.Label(), Name: h.Name, Location: h.Location}
		data.Hospitals = append(data.Hospitals, opt)
		if h.ID == snap.HospitalID {
			data.Selected = &opt
		}
	}

	return ctx.Render(http.StatusOK, "index.html", data)
}

// home sends the browser back to the page after a form action. Client errors
// are not fatal to the page: the session carries whatever notice applies.
func home(ctx echo.Context, err error) error {
	var ce *constants.CodedError
	if err != nil && !(errors.As(err, &ce) && ce.Code() < http.StatusInternalServerError) {
		return err
	}
	if err != nil {
		logger.Debugf(ctx.Request().Context(), "%s %s: %s", ctx.Request().Method, ctx.Path(), err.Error())
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}

func (c *Controller) UIUploadFiles(ctx echo.Context) error {
	source, files, err := uploadedFiles(ctx)
	if err != nil {
		return home(ctx, err)
	}

	_, err = c.sessions.AddFiles(ctx.Request().Context(), sessionID(ctx), source, files)
	return home(ctx, err)
}

func (c *Controller) UIRemoveFile(ctx echo.Context) error {
	idx, err := fileIndex(ctx)
	if err != nil {
		return home(ctx, err)
	}

	_, err = c.sessions.RemoveFile(ctx.Request().Context(), sessionID(ctx), idx)
	return home(ctx, err)
}

func (c *Controller) UISelectHospital(ctx echo.Context) error {
	// the placeholder option posts an empty value
	var id domain.HospitalID
	if err := id.UnmarshalText([]byte(ctx.FormValue("hospital_id"))); err != nil {
		return home(ctx, err)
	}

	_, err := c.sessions.SelectHospital(ctx.Request().Context(), sessionID(ctx), id)
	return home(ctx, err)
}

// UICreateNarrative answers right away; the page polls itself while Busy.
func (c *Controller) UICreateNarrative(ctx echo.Context) error {
	_, err := c.sessions.Trigger(ctx.Request().Context(), sessionID(ctx))
	return home(ctx, err)
}

func (c *Controller) UIBack(ctx echo.Context) error {
	_, err := c.sessions.Back(ctx.Request().Context(), sessionID(ctx))
	return home(ctx, err)
}
