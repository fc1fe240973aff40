package controllers

import (
	"printstock/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(DB *gorm.DB) *NotificationController {
	return &NotificationController{DB: DB}
}

// GetNotifications lists the notifications addressed to the caller's role,
// newest first.
func (c *NotificationController) GetNotifications(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)

	var notifications []models.Notification
	q := c.DB.Order("id desc").Limit(100)
	if role != models.RoleAdmin {
		q = q.Where("target_role = ?", role)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": notifications})
}

func (c *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	result := c.DB.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Notification marked as read"})
}
