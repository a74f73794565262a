package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"donelist/utils"
)

func getTags(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		tags, err := st.ListTags(c.Request().Context(), currentUserID(c))
		if err != nil {
			return fail(c, logger, "getTags", err)
		}
		return c.JSON(http.StatusOK, tags)
	}
}

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func createTag(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createTagRequest
		if err := decodeBody(c, &req); err != nil {
			return invalid(c, "invalid request body")
		}
		if err := utils.ValidateTagName(req.Name); err != nil {
			return invalid(c, err.Error())
		}
		if req.Color != "" {
			if err := utils.ValidateColor(req.Color); err != nil {
				return invalid(c, err.Error())
			}
		}

		tag, err := st.CreateTag(c.Request().Context(), currentUserID(c), req.Name, req.Color)
		if err != nil {
			return fail(c, logger, "createTag", err)
		}
		return c.JSON(http.StatusCreated, tag)
	}
}

func deleteTag(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if err := st.DeleteTag(c.Request().Context(), currentUserID(c), id); err != nil {
			return fail(c, logger, "deleteTag", err)
		}
		return c.JSON(http.StatusOK, deleteResponse{Success: true, ID: id})
	}
}
