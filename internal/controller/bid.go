package controller

import (
	"net/http"

	"gigflow/internal/entity"
	"gigflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
	devMode    bool
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, auth echo.MiddlewareFunc, devMode bool) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v, devMode: devMode}

	outer.POST("/bids", h.PostBid, auth)
	outer.GET("/bids/:gigId", h.GetGigBids, auth)
	outer.PATCH("/bids/:bidId/hire", h.HireBid, auth)

	return h
}

type postBidInput struct {
	GigId   string   `json:"gigId" validate:"required,max=100"`
	Message string   `json:"message" validate:"required,max=500"`
	Price   *float64 `json:"price" validate:"required,gte=0"`
}

type bidResponse struct {
	response
	Bid *entity.BidOutputModel `json:"bid"`
}

// /bids
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse("Input data is not formed correctly")); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse(getAllErrorMessages(err))); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateBidInput{
		GigId:    input.GigId,
		BidderId: callerId(c),
		Message:  input.Message,
		Price:    *input.Price,
	}

	bid, err := h.bidService.CreateBid(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, bidResponse{okResponse("Bid submitted successfully"), bid}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse("Gig not found")); e != nil {
			return e
		}
	case service.ErrGigNotAcceptingBids:
		if e := c.JSON(http.StatusConflict, errorResponse("This gig is no longer accepting bids")); e != nil {
			return e
		}
	case service.ErrOwnGigBid:
		if e := c.JSON(http.StatusForbidden, errorResponse("You cannot bid on your own gig")); e != nil {
			return e
		}
	case service.ErrDuplicateBid:
		if e := c.JSON(http.StatusConflict, errorResponse("You have already submitted a bid for this gig")); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error submitting bid", err, h.devMode)); e != nil {
			return e
		}
	}

	return err
}

type getGigBidsInput struct {
	GigId  string `param:"gigId" validate:"required,max=100"`
	Limit  int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset int32  `query:"offset" validate:"gte=0"`
}

func newGetGigBidsInput() getGigBidsInput {
	return getGigBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// Count is the total number of bids on the gig, not the page size.
type bidListResponse struct {
	response
	Count int                     `json:"count"`
	Bids  []entity.BidOutputModel `json:"bids"`
}

// /bids/:gigId
func (h *bidRoutesHandler) GetGigBids(c echo.Context) error {
	var input = newGetGigBidsInput()
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse("Input data is not formed correctly")); e != nil {
			return e
		}

		return err
	}

	input.GigId = c.Param("gigId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse(getAllErrorMessages(err))); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	bids, total, err := h.bidService.GetGigBids(c.Request().Context(), input.GigId, callerId(c), pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bidListResponse{okResponse("OK"), total, bids}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse("Gig not found")); e != nil {
			return e
		}
	case service.ErrUserIsNotGigOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse("You are not authorized to view bids for this gig")); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error fetching bids", err, h.devMode)); e != nil {
			return e
		}
	}

	return err
}

// /bids/:bidId/hire
func (h *bidRoutesHandler) HireBid(c echo.Context) error {
	bid, err := h.bidService.HireBid(c.Request().Context(), c.Param("bidId"), callerId(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, bidResponse{okResponse("Freelancer hired successfully"), bid}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse("Bid not found")); e != nil {
			return e
		}
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse("Gig not found")); e != nil {
			return e
		}
	case service.ErrUserIsNotGigOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse("You are not authorized to hire for this gig")); e != nil {
			return e
		}
	case service.ErrGigAlreadyAssigned:
		if e := c.JSON(http.StatusConflict, errorResponse("This gig has already been assigned")); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error hiring freelancer", err, h.devMode)); e != nil {
			return e
		}
	}

	return err
}
