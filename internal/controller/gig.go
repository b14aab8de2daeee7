package controller

import (
	"net/http"

	"gigflow/internal/common"
	"gigflow/internal/entity"
	"gigflow/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type gigRoutesHandler struct {
	gigService service.Gig
	validate   *validator.Validate
	devMode    bool
}

func newGigRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, auth echo.MiddlewareFunc, devMode bool) *gigRoutesHandler {
	h := &gigRoutesHandler{gigService: services.Gig, validate: v, devMode: devMode}

	outer.POST("/gigs", h.PostGig, auth)
	outer.GET("/gigs", h.GetGigs)
	outer.GET("/gigs/:gigId", h.GetGig)

	return h
}

type postGigInput struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=1000"`
	Budget      *float64 `json:"budget" validate:"required,gte=0"`
}

type gigResponse struct {
	response
	Gig *entity.GigOutputModel `json:"gig"`
}

// /gigs
func (h *gigRoutesHandler) PostGig(c echo.Context) error {
	var input postGigInput
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

	model := &entity.CreateGigInput{
		Title:       input.Title,
		Description: input.Description,
		Budget:      *input.Budget,
		OwnerId:     callerId(c),
	}

	gig, err := h.gigService.CreateGig(c.Request().Context(), model)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error creating gig", err, h.devMode)); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusCreated, gigResponse{okResponse("Gig created successfully"), gig}); e != nil {
		return e
	}

	return nil
}

type getGigsInput struct {
	Search string `query:"search"`
	Status string `query:"status" validate:"omitempty,oneof=open assigned"`
	Limit  int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset int32  `query:"offset" validate:"gte=0"`
}

func newGetGigsInput() getGigsInput {
	return getGigsInput{Status: common.GigOpen, Limit: defaultLimit, Offset: defaultOffset}
}

// Count is the total number of matching gigs, not the page size.
type gigListResponse struct {
	response
	Count int                     `json:"count"`
	Gigs  []entity.GigOutputModel `json:"gigs"`
}

// /gigs
func (h *gigRoutesHandler) GetGigs(c echo.Context) error {
	var input = newGetGigsInput()
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

	filter := &entity.GigFilter{Status: input.Status, Search: input.Search}
	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	gigs, total, err := h.gigService.GetGigs(c.Request().Context(), filter, pg)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error fetching gigs", err, h.devMode)); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, gigListResponse{okResponse("OK"), total, gigs}); e != nil {
		return e
	}

	return nil
}

// /gigs/:gigId
func (h *gigRoutesHandler) GetGig(c echo.Context) error {
	gig, err := h.gigService.GetGigById(c.Request().Context(), c.Param("gigId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, gigResponse{okResponse("OK"), gig}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse("Gig not found")); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, internalErrorResponse("Error fetching gig", err, h.devMode)); e != nil {
			return e
		}
	}

	return err
}
