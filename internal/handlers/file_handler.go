package handlers

import (
	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	files *services.FileService
}

func NewFileHandler(files *services.FileService) *FileHandler {
	return &FileHandler{files: files}
}

func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperr.New(apperr.BadRequest, "No file uploaded")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to open file", err)
	}
	defer f.Close()

	record, err := h.files.Upload(c.UserContext(), services.UploadInput{
		Name:     fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Data:     f,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *FileHandler) List(c *fiber.Ctx) error {
	records, err := h.files.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

func (h *FileHandler) GetByID(c *fiber.Ctx) error {
	record, err := h.files.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (h *FileHandler) Delete(c *fiber.Ctx) error {
	if err := h.files.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "File deleted successfully"})
}
