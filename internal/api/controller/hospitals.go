package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/hcdash/internal/domain"
)

func (c *Controller) ListHospitals(ctx echo.Context) error {
	hospitals, err := c.store.ListHospitals(ctx.Request().Context())
	if err != nil {
		return err
	}

	options := make([]domain.HospitalOption, 0, len(hospitals))
	for _, h := range hospitals {
		options = append(options, domain.HospitalOption{
			ID:       h.ID,
			Label:    h.Label(),
			Name:     h.Name,
			Location: h.Location,
		})
	}

	return ctx.JSON(http.StatusOK, options)
}

func (c *Controller) GetHospital(ctx echo.Context) error {
	id, err := domain.ParseHospitalID(ctx.Param("id"))
	if err != nil {
		return err
	}

	hospital, err := c.store.GetHospital(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, hospital)
}

func (c *Controller) GetDashboard(ctx echo.Context) error {
	id, err := domain.ParseHospitalID(ctx.Param("id"))
	if err != nil {
		return err
	}

	dashboard, err := c.narrative.DashboardFor(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dashboard)
}
