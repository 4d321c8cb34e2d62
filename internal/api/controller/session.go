package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/constants"
)

func (c *Controller) GetSession(ctx echo.Context) error {
	snap, err := c.sessions.Snapshot(ctx.Request().Context(), sessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snap)
}

// uploadedFiles reads only the multipart headers; file contents are never opened.
func uploadedFiles(ctx echo.Context) (domain.UploadSource, []domain.UploadedFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return "", nil, constants.ErrNoFiles
	}

	source := domain.UploadSourceBrowse
	if v := ctx.FormValue("source"); v != "" {
		source = domain.UploadSource(v)
	}
	if !source.Valid() {
		return "", nil, constants.NewCodedError("source must be drop or browse", http.StatusBadRequest)
	}

	headers := form.File["files"]
	files := make([]domain.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, domain.UploadedFile{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(echo.HeaderContentType),
		})
	}

	return source, files, nil
}

func (c *Controller) UploadFiles(ctx echo.Context) error {
	source, files, err := uploadedFiles(ctx)
	if err != nil {
		return err
	}

	snap, err := c.sessions.AddFiles(ctx.Request().Context(), sessionID(ctx), source, files)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snap)
}

func (c *Controller) RemoveFile(ctx echo.Context) error {
	idx, err := fileIndex(ctx)
	if err != nil {
		return err
	}

	snap, err := c.sessions.RemoveFile(ctx.Request().Context(), sessionID(ctx), idx)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snap)
}

func (c *Controller) SelectHospital(ctx echo.Context) error {
	var req domain.SelectHospitalRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	var id domain.HospitalID
	if err := id.UnmarshalText([]byte(req.HospitalID)); err != nil {
		return err
	}

	snap, err := c.sessions.SelectHospital(ctx.Request().Context(), sessionID(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snap)
}

// CreateNarrative starts the analysis and, unless wait=false, holds the
// request until results are ready. A client that goes away early does not
// stop the analysis.
func (c *Controller) CreateNarrative(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id := sessionID(ctx)

	landed, err := c.sessions.Trigger(reqCtx, id)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if ctx.QueryParam("wait") == "false" {
		status = http.StatusAccepted
	} else {
		select {
		case <-landed:
		case <-reqCtx.Done():
			status = http.StatusAccepted
		}
	}

	snap, err := c.sessions.Snapshot(reqCtx, id)
	if err != nil {
		return err
	}

	return ctx.JSON(status, snap)
}

func (c *Controller) Back(ctx echo.Context) error {
	snap, err := c.sessions.Back(ctx.Request().Context(), sessionID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snap)
}
