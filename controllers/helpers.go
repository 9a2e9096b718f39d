package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/meinhoongagan/servicehub/storage"
	"github.com/meinhoongagan/servicehub/utils"
)

// joinedList is the envelope of the joined ticket and review views.
type joinedList[T any] struct {
	Success bool `json:"success"`
	repository.Paginated[T]
}

func pageFrom(c *fiber.Ctx) repository.Page {
	return repository.NewPage(c.QueryInt("page", repository.DefaultPage), c.QueryInt("limit", repository.DefaultLimit))
}

// parseBody decodes the request into dst and runs its validate tags.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return utils.Validation("Cannot parse request body")
	}
	return utils.ValidateStruct(dst)
}

// storeID reads an id path parameter the way the store would see it:
// malformed ids surface as server errors.
func storeID(c *fiber.Ctx, name string) (uint, error) {
	return utils.ParseStoreID(c.Params(name))
}

// notFound maps a repository miss to a 404 carrying msg. Other errors pass through.
func notFound(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(msg)
	}
	return err
}

// removeFiles removes uploaded files through their FileRemoval markers.
// Markers whose file could not be removed stay behind for the sweeper.
func (h *Handler) removeFiles(ctx context.Context, marks []models.FileRemoval) {
	for _, m := range marks {
		if err := h.Images.Remove(ctx, m.Ref); err != nil {
			logger.Log.WithError(err).WithField("ref", m.Ref).Warn("file removal deferred to sweeper")
			if ferr := h.FileRemovals.Failed(ctx, m.ID, err); ferr != nil {
				logger.Log.WithError(ferr).WithField("file_removal_id", m.ID).Error("record failed removal")
			}
			continue
		}
		if err := h.FileRemovals.Done(ctx, m.ID); err != nil {
			logger.Log.WithError(err).WithField("file_removal_id", m.ID).Error("clear file removal")
		}
	}
}

// retireFile marks an uploaded file for removal and tries to remove it now.
func (h *Handler) retireFile(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	marks, err := h.FileRemovals.Mark(ctx, []string{ref})
	if err != nil {
		logger.Log.WithError(err).WithField("ref", ref).Error("mark file for removal")
		return
	}
	h.removeFiles(ctx, marks)
}

// rollbackUploads removes files written for a request whose database write failed.
func (h *Handler) rollbackUploads(ctx context.Context, refs []string) {
	if failed := storage.RemoveAll(ctx, h.Images, refs); len(failed) > 0 {
		logger.Log.WithField("refs", failed).Warn("rollback left files behind, marking for sweep")
		if _, err := h.FileRemovals.Mark(ctx, failed); err != nil {
			logger.Log.WithError(err).Error("mark rollback leftovers")
		}
	}
}
