package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/service"
	"pharmacy_inventory/internal/view"

	"github.com/gin-gonic/gin"
)

// @Summary      Inventory dashboard
// @Description  Lists medicines ordered by id; search filters by name, case-insensitively
// @Tags         inventory
// @Produce      html
// @Param        search  query  string  false  "Name substring"
// @Success      200
// @Success      302  "not logged in"
// @Router       /dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	search := c.Query("search")
	meds, err := h.services.Inventory.List(c.Request.Context(), search)
	if err != nil {
		h.logAndFail(c, "medicine_list_failed", err, "search", search)
		return
	}
	h.render(c, http.StatusOK, view.Dashboard, gin.H{
		"title":     "Dashboard",
		"medicines": meds,
		"search":    search,
		"today":     models.DateOf(h.now()),
	})
}

// @Summary      Add-medicine form
// @Tags         inventory
// @Produce      html
// @Success      200
// @Router       /add_medicine [get]
func (h *Handler) addMedicinePage(c *gin.Context) {
	h.render(c, http.StatusOK, view.AddMedicine, gin.H{
		"title": "Add medicine",
		"form":  service.MedicineInput{},
	})
}

// @Summary      Add a medicine
// @Tags         inventory
// @Accept       x-www-form-urlencoded
// @Param        name          formData  string  true  "Name"
// @Param        manufacturer  formData  string  true  "Manufacturer"
// @Param        expiry_date   formData  string  true  "Expiry date (YYYY-MM-DD)"
// @Param        quantity      formData  integer true  "Units in stock"
// @Param        price         formData  number  true  "Unit price"
// @Success      302
// @Router       /add_medicine [post]
func (h *Handler) addMedicine(c *gin.Context) {
	var input service.MedicineInput
	if ok := h.bindFormOrRedirect(c, &input, "/add_medicine"); !ok {
		return
	}

	m, err := h.services.Inventory.Create(c.Request.Context(), c.GetInt64(userIDKey), input)
	if err != nil {
		h.handleMedicineError(c, err, "/add_medicine", "medicine_create_failed")
		return
	}
	if h.log != nil {
		h.log.Infow("medicine_created", "medicine_id", m.ID, "added_by", m.AddedBy)
	}
	h.flash(c, models.FlashSuccess, msgMedicineAdded)
	h.redirect(c, "/dashboard")
}

// @Summary      Edit-medicine form
// @Tags         inventory
// @Produce      html
// @Param        id  path  int  true  "Medicine id"
// @Success      200
// @Failure      404
// @Router       /edit_medicine/{id} [get]
func (h *Handler) editMedicinePage(c *gin.Context) {
	id, ok := h.medicineID(c)
	if !ok {
		return
	}

	m, err := h.services.Inventory.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.logAndFail(c, "medicine_get_failed", err, "medicine_id", id)
		return
	}
	h.render(c, http.StatusOK, view.EditMedicine, gin.H{
		"title": "Edit " + m.Name,
		"id":    m.ID,
		"form":  service.FromMedicine(m),
	})
}

// @Summary      Update a medicine
// @Description  Replaces every field; added_by is kept
// @Tags         inventory
// @Accept       x-www-form-urlencoded
// @Param        id            path      int     true  "Medicine id"
// @Param        name          formData  string  true  "Name"
// @Param        manufacturer  formData  string  true  "Manufacturer"
// @Param        expiry_date   formData  string  true  "Expiry date (YYYY-MM-DD)"
// @Param        quantity      formData  integer true  "Units in stock"
// @Param        price         formData  number  true  "Unit price"
// @Success      302
// @Failure      404
// @Router       /edit_medicine/{id} [post]
func (h *Handler) editMedicine(c *gin.Context) {
	id, ok := h.medicineID(c)
	if !ok {
		return
	}
	back := fmt.Sprintf("/edit_medicine/%d", id)

	var input service.MedicineInput
	if ok := h.bindFormOrRedirect(c, &input, back); !ok {
		return
	}

	if _, err := h.services.Inventory.Update(c.Request.Context(), id, input); err != nil {
		h.handleMedicineError(c, err, back, "medicine_update_failed", "medicine_id", id)
		return
	}
	if h.log != nil {
		h.log.Infow("medicine_updated", "medicine_id", id, "user_id", c.GetInt64(userIDKey))
	}
	h.flash(c, models.FlashSuccess, msgMedicineUpdated)
	h.redirect(c, "/dashboard")
}

// @Summary      Delete a medicine
// @Tags         inventory
// @Param        id  path  int  true  "Medicine id"
// @Success      302
// @Failure      404
// @Router       /delete_medicine/{id} [post]
func (h *Handler) deleteMedicine(c *gin.Context) {
	id, ok := h.medicineID(c)
	if !ok {
		return
	}

	if err := h.services.Inventory.Delete(c.Request.Context(), id); err != nil {
		h.handleMedicineError(c, err, "/dashboard", "medicine_delete_failed", "medicine_id", id)
		return
	}
	if h.log != nil {
		h.log.Infow("medicine_deleted", "medicine_id", id, "user_id", c.GetInt64(userIDKey))
	}
	h.flash(c, models.FlashSuccess, msgMedicineDeleted)
	h.redirect(c, "/dashboard")
}

// handleMedicineError maps inventory errors: validation goes back to the
// form with a flash, a missing row is a 404, the rest is a logged 500.
func (h *Handler) handleMedicineError(c *gin.Context, err error, form, logKey string, kv ...interface{}) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		h.flash(c, models.FlashDanger, ve.Message())
		h.redirect(c, form)
	case errors.Is(err, service.ErrNotFound):
		h.notFound(c)
	case errors.Is(err, service.ErrUnauthenticated):
		h.flash(c, models.FlashDanger, msgLoginRequired)
		h.redirect(c, "/login")
	default:
		h.logAndFail(c, logKey, err, kv...)
	}
}
