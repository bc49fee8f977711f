// Package api exposes the importer over HTTP.
package api

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"fjacquet/camt-import/internal/camtimport"
	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/logging"
	"fjacquet/camt-import/internal/repository"
)

// ImportResponse is the JSON response from the /api/import endpoint.
type ImportResponse struct {
	Success      bool             `json:"success"`
	StatementIDs []int64          `json:"statement_ids,omitempty"`
	Warnings     []WarningPayload `json:"warnings,omitempty"`
	Error        string           `json:"error,omitempty"`
	Tag          string           `json:"tag,omitempty"`
}

// WarningPayload is one non-fatal finding of an import run.
type WarningPayload struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	importer *camtimport.Importer
	log      logging.Logger
}

// NewHandler creates a Handler running imports through the given importer.
func NewHandler(importer *camtimport.Importer, log logging.Logger) *Handler {
	return &Handler{importer: importer, log: log}
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/import", h.HandleImport)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleImport runs one import from a multipart upload. The form carries the
// CAMT.053 document in "file" and the destination in "journal_id" and
// "company_id".
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded, use form field 'file'", "")
	}
	journalID, err := strconv.ParseInt(c.FormValue("journal_id"), 10, 64)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "journal_id must be an integer", "")
	}
	companyID, err := strconv.ParseInt(c.FormValue("company_id"), 10, 64)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "company_id must be an integer", "")
	}

	file, err := header.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "cannot open uploaded file", "")
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.log.WithError(err).Warn("Failed to close upload")
		}
	}()
	raw, err := io.ReadAll(file)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "cannot read uploaded file", "")
	}

	result, err := h.importer.Import(raw, journalID, companyID)
	if err != nil {
		h.log.WithError(err).Warn("Import failed",
			logging.F("journal_id", journalID),
			logging.F("file", header.Filename))
		status, tag := statusForError(err)
		return writeError(c, status, err.Error(), tag)
	}

	response := ImportResponse{
		Success:      true,
		StatementIDs: result.StatementIDs,
	}
	for _, warning := range result.Warnings {
		response.Warnings = append(response.Warnings, WarningPayload{
			Tag:     warning.Tag(),
			Message: warning.Message(),
		})
	}
	return c.JSON(response)
}

func writeError(c *fiber.Ctx, status int, message, tag string) error {
	return c.Status(status).JSON(ImportResponse{Error: message, Tag: tag})
}

// statusForError maps the import error taxonomy onto HTTP statuses.
func statusForError(err error) (int, string) {
	var notFound *repository.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.StatusNotFound, ""
	}
	var importErr *importerror.ImportError
	if !errors.As(err, &importErr) {
		return fiber.StatusInternalServerError, ""
	}
	switch importErr.Kind {
	case importerror.KindParseError, importerror.KindUnsupportedDocument:
		return fiber.StatusBadRequest, string(importErr.Kind)
	case importerror.KindAlreadyImported:
		return fiber.StatusConflict, string(importErr.Kind)
	case importerror.KindJournalMissingAccount,
		importerror.KindAccountMismatch,
		importerror.KindUnknownCurrency:
		return fiber.StatusUnprocessableEntity, string(importErr.Kind)
	default:
		return fiber.StatusInternalServerError, string(importErr.Kind)
	}
}
