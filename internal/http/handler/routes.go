package handler

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"rxvault/internal/service"
)

// uploadResponse is the success body of the upload endpoint.
type uploadResponse struct {
	Message  string `json:"message"`
	FileLink string `json:"file_link"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.PrescriptionService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload_prescription", UploadPrescription(svc))
	app.Get("/get_prescriptions/:user_id", GetPrescriptions(svc))
}

// HealthCheck reports DB connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadPrescription handles multipart prescription uploads. Form fields:
// user_id, clinic_name, description, date (YYYY-MM-DD), and a file part
// named "file". Success returns 201 with the generated download link.
func UploadPrescription(svc service.PrescriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		p, err := svc.Upload(c.UserContext(), service.UploadInput{
			UserID:      c.FormValue("user_id"),
			ClinicName:  c.FormValue("clinic_name"),
			Description: c.FormValue("description"),
			Date:        c.FormValue("date"),
			Filename:    fh.Filename,
			Reader:      f,
			Size:        fh.Size,
			ContentType: ct,
		})
		if err != nil {
			return writeUploadError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			Message:  "Prescription uploaded successfully",
			FileLink: p.FileLink,
		})
	}
}

// writeUploadError maps the service error taxonomy onto distinct response
// codes: validation failures are the client's fault, backend failures are not.
func writeUploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFileRequired):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	case errors.Is(err, service.ErrUserIDRequired):
		return writeError(c, fiber.StatusBadRequest, "USER_ID_REQUIRED", "user_id is required")
	case errors.Is(err, service.ErrInvalidUserID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_USER_ID", "user_id must be numeric")
	case errors.Is(err, service.ErrInvalidDate):
		return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "date must be in YYYY-MM-DD format")
	case errors.Is(err, service.ErrStorage):
		return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "storage backend failure")
	case errors.Is(err, service.ErrPersistence):
		return writeError(c, fiber.StatusInternalServerError, "PERSISTENCE_ERROR", "persistence backend failure")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// GetPrescriptions lists all prescriptions for one user as a flat JSON
// array. Unknown users produce an empty array, never an error.
func GetPrescriptions(svc service.PrescriptionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListByUser(c.UserContext(), c.Params("user_id"))
		if err != nil {
			if errors.Is(err, service.ErrPersistence) {
				return writeError(c, fiber.StatusInternalServerError, "PERSISTENCE_ERROR", "persistence backend failure")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}
