package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"catering-service/internal/domain"
	"catering-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Handler struct {
	orders       *services.OrderService
	dispatches   *services.DispatchService
	driverStatus *services.DriverStatusService
	attachments  *services.AttachmentService
	addresses    *services.AddressService
	rdb          *redis.Client
}

func NewHandler(orders *services.OrderService, dispatches *services.DispatchService, driverStatus *services.DriverStatusService, attachments *services.AttachmentService, addresses *services.AddressService, rdb *redis.Client) *Handler {
	return &Handler{
		orders:       orders,
		dispatches:   dispatches,
		driverStatus: driverStatus,
		attachments:  attachments,
		addresses:    addresses,
		rdb:          rdb,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	api := r.Group("/", auth)

	api.POST("/orders/catering", h.CreateCateringOrder)
	api.POST("/orders/on-demand", h.CreateOnDemandOrder)
	api.GET("/orders/:orderNumber", h.GetOrderByNumber)
	api.PATCH("/orders/:orderNumber/status", h.UpdateOrderStatus)

	api.POST("/orders/:orderNumber/dispatch", h.AssignDriver)
	api.GET("/orders/:orderNumber/dispatch", h.GetCurrentDispatch)
	api.GET("/orders/:orderNumber/dispatch/history", h.GetDispatchHistory)
	api.POST("/orders/:orderNumber/driver-status", h.AdvanceDriverStatus)
	api.GET("/orders/:orderNumber/driver-status", h.GetDriverStatus)

	api.POST("/attachments", h.UploadAttachment)
	api.POST("/attachments/relink", h.RelinkAttachments)
	api.POST("/attachments/reclaim", h.ReclaimAttachments)

	api.POST("/addresses", h.CreateAddress)
	api.GET("/addresses", h.ListAddresses)
	api.GET("/addresses/:id", h.GetAddress)
}

func callerID(c *gin.Context) uint64 {
	return c.MustGet("user_id").(uint64)
}

// respondError maps the error taxonomy to field-attributable HTTP responses.
func respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Reason, "field": ve.Field})
	case errors.Is(err, domain.ErrDuplicateOrderNumber):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": "orderNumber"})
	case errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrOrderNotAssignable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": "status"})
	case errors.Is(err, domain.ErrDriverNotEligible):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "field": "driverId"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, services.ErrDispatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func addressInput(dto AddressDTO) services.AddressInput {
	return services.AddressInput{
		ID:           dto.ID,
		Street1:      dto.Street1,
		Street2:      dto.Street2,
		City:         dto.City,
		State:        dto.State,
		Zip:          dto.Zip,
		County:       dto.County,
		IsRestaurant: dto.IsRestaurant,
		IsShared:     dto.IsShared,
	}
}

func (h *Handler) CreateCateringOrder(c *gin.Context) {
	var req CreateCateringOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := services.CateringDraft{
		OrderDraft: services.OrderDraft{
			UserID:          callerID(c),
			OrderNumber:     req.OrderNumber,
			Pickup:          addressInput(req.Pickup),
			Delivery:        addressInput(req.Delivery),
			PickupDateTime:  req.PickupDateTime,
			ArrivalDateTime: req.ArrivalDateTime,
			OrderTotal:      req.OrderTotal,
			Tip:             req.Tip,
		},
		Headcount:     req.Headcount,
		NeedHost:      req.NeedHost,
		HoursNeeded:   req.HoursNeeded,
		NumberOfHosts: req.NumberOfHosts,
	}

	order, err := h.orders.CreateCateringOrder(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) CreateOnDemandOrder(c *gin.Context) {
	var req CreateOnDemandOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := services.OnDemandDraft{
		OrderDraft: services.OrderDraft{
			UserID:          callerID(c),
			OrderNumber:     req.OrderNumber,
			Pickup:          addressInput(req.Pickup),
			Delivery:        addressInput(req.Delivery),
			PickupDateTime:  req.PickupDateTime,
			ArrivalDateTime: req.ArrivalDateTime,
			OrderTotal:      req.OrderTotal,
			Tip:             req.Tip,
		},
		ItemDelivered: req.ItemDelivered,
		VehicleType:   req.VehicleType,
		Length:        req.Length,
		Width:         req.Width,
		Height:        req.Height,
		Weight:        req.Weight,
	}

	order, err := h.orders.CreateOnDemandOrder(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func orderCacheKey(orderNumber string) string {
	return "order:num:" + orderNumber
}

func (h *Handler) GetOrderByNumber(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	ctx := c.Request.Context()
	cacheKey := orderCacheKey(orderNumber)

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached domain.PlacedOrder
			if json.Unmarshal([]byte(b), &cached) == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	placed, err := h.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(placed); err == nil {
			h.rdb.Set(ctx, cacheKey, data, 10*time.Second)
		}
	}
	c.JSON(http.StatusOK, placed)
}

// resolveRef turns the order number in the path into an OrderRef.
func (h *Handler) resolveRef(c *gin.Context) (domain.OrderRef, bool) {
	placed, err := h.orders.FindByOrderNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return domain.OrderRef{}, false
	}
	return placed.Ref(), true
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, ok := h.resolveRef(c)
	if !ok {
		return
	}

	placed, err := h.orders.UpdateStatus(c.Request.Context(), ref, domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		h.rdb.Del(context.Background(), orderCacheKey(c.Param("orderNumber")))
	}
	c.JSON(http.StatusOK, placed)
}

func (h *Handler) AssignDriver(c *gin.Context) {
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, ok := h.resolveRef(c)
	if !ok {
		return
	}

	dispatch, err := h.dispatches.AssignDriver(c.Request.Context(), ref, req.DriverID, callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		h.rdb.Del(context.Background(), orderCacheKey(c.Param("orderNumber")))
	}
	c.JSON(http.StatusCreated, dispatch)
}

func (h *Handler) GetCurrentDispatch(c *gin.Context) {
	ref, ok := h.resolveRef(c)
	if !ok {
		return
	}

	dispatch, err := h.dispatches.CurrentDispatch(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	if dispatch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dispatch for this order"})
		return
	}
	c.JSON(http.StatusOK, dispatch)
}

func (h *Handler) GetDispatchHistory(c *gin.Context) {
	ref, ok := h.resolveRef(c)
	if !ok {
		return
	}

	history, err := h.dispatches.DispatchHistory(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *Handler) AdvanceDriverStatus(c *gin.Context) {
	var req AdvanceDriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, ok := h.resolveRef(c)
	if !ok {
		return
	}

	status, err := h.driverStatus.Advance(c.Request.Context(), ref, domain.DriverStatus(req.Status), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driverStatus": status})
}

func (h *Handler) GetDriverStatus(c *gin.Context) {
	ref, ok := h.resolveRef(c)
	if !ok {
		return
	}

	status, err := h.driverStatus.Current(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	timeline, err := h.driverStatus.Timeline(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driverStatus": status, "timeline": timeline})
}

func (h *Handler) UploadAttachment(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meta := services.UploadMeta{
		OwnerUserID: callerID(c),
		FileName:    header.Filename,
		FileType:    header.Header.Get("Content-Type"),
		EntityType:  domain.EntityType(c.PostForm("entityType")),
		EntityID:    c.PostForm("entityId"),
		Category:    c.PostForm("category"),
	}

	attachment, err := h.attachments.RecordUpload(c.Request.Context(), meta, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

func (h *Handler) RelinkAttachments(c *gin.Context) {
	var req RelinkAttachmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	variant := domain.OrderVariant(req.Variant)
	if variant != domain.VariantCatering && variant != domain.VariantOnDemand {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant must be catering or on_demand"})
		return
	}

	count, err := h.attachments.Relink(c.Request.Context(), req.TempEntityID, domain.OrderRef{Variant: variant, ID: req.OrderID}, callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relinkedCount": count})
}

func (h *Handler) ReclaimAttachments(c *gin.Context) {
	var req ReclaimAttachmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.FileIDs) == 0 && req.EntityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileIds or entityId required"})
		return
	}

	owner := callerID(c)
	total := services.ReclaimResult{}

	if len(req.FileIDs) > 0 {
		result, err := h.attachments.ReclaimFiles(c.Request.Context(), req.FileIDs, owner)
		if err != nil {
			respondError(c, err)
			return
		}
		total.DeletedCount += result.DeletedCount
		total.SkippedCount += result.SkippedCount
	}
	if req.EntityID != "" {
		result, err := h.attachments.ReclaimEntity(c.Request.Context(), req.EntityID, owner)
		if err != nil {
			respondError(c, err)
			return
		}
		total.DeletedCount += result.DeletedCount
		total.SkippedCount += result.SkippedCount
	}
	c.JSON(http.StatusOK, total)
}

func (h *Handler) CreateAddress(c *gin.Context) {
	var req AddressDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.addresses.Create(c.Request.Context(), addressInput(req), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

func (h *Handler) GetAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	address, err := h.addresses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	}
	c.JSON(http.StatusOK, address)
}

func (h *Handler) ListAddresses(c *gin.Context) {
	userID := callerID(c)
	if q := c.Query("userId"); q != "" && domain.AccountType(c.GetString("account_type")).IsStaff() {
		if parsed, err := strconv.ParseUint(q, 10, 64); err == nil {
			userID = parsed
		}
	}

	addresses, err := h.addresses.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}
