package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"donelist/models"
	"donelist/store"
	"donelist/utils"
)

func getTodos(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		f := store.TaskFilter{OwnerID: currentUserID(c)}

		if v := c.QueryParam("completed"); v != "" {
			completed, err := strconv.ParseBool(v)
			if err != nil {
				return invalid(c, "completed must be true or false")
			}
			f.Completed = &completed
		}
		if v := c.QueryParam("priority"); v != "" {
			priority, ok := models.ParsePriority(v)
			if !ok {
				return invalid(c, "priority must be one of low, medium, high, urgent")
			}
			f.Priority = &priority
		}
		f.Search = c.QueryParam("search")
		f.TagID = c.QueryParam("tagId")

		key, ok := store.ParseSortKey(c.QueryParam("sortBy"))
		if !ok {
			return invalid(c, "sortBy must be one of createdAt, dueDate, priority, title")
		}
		order, ok := store.ParseSortOrder(c.QueryParam("sortOrder"))
		if !ok {
			return invalid(c, "sortOrder must be asc or desc")
		}

		tasks, err := st.ListTasks(c.Request().Context(), f, key, order)
		if err != nil {
			return fail(c, logger, "getTodos", err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func getTodo(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := st.GetTask(c.Request().Context(), currentUserID(c), c.Param("id"))
		if err != nil {
			return fail(c, logger, "getTodo", err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

type createTodoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	TagIDs      []string `json:"tagIds"`
}

func createTodo(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createTodoRequest
		if err := decodeBody(c, &req); err != nil {
			return invalid(c, "invalid request body")
		}
		if err := utils.ValidateTitle(req.Title); err != nil {
			return invalid(c, err.Error())
		}

		p := store.CreateTaskParams{
			Title:       req.Title,
			Description: req.Description,
			TagIDs:      req.TagIDs,
		}
		if req.Priority != "" {
			priority, ok := models.ParsePriority(req.Priority)
			if !ok {
				return invalid(c, "priority must be one of low, medium, high, urgent")
			}
			p.Priority = priority
		}
		if req.DueDate != "" {
			due, err := utils.ParseDueDate(req.DueDate)
			if err != nil {
				return invalid(c, err.Error())
			}
			p.DueDate = &due
		}

		task, err := st.CreateTask(c.Request().Context(), currentUserID(c), p)
		if err != nil {
			return fail(c, logger, "createTodo", err)
		}
		return c.JSON(http.StatusCreated, task)
	}
}

// updateTodo is a patch: only fields present in the body are touched.
// Absent and null diverge for dueDate (null clears it), so the body is
// decoded field by field.
func updateTodo(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var raw map[string]json.RawMessage
		if err := decodeBody(c, &raw); err != nil {
			return invalid(c, "invalid request body")
		}

		var p store.UpdateTaskParams
		if v, ok := raw["title"]; ok {
			var title string
			if err := sonic.Unmarshal(v, &title); err != nil {
				return invalid(c, "title must be a string")
			}
			if err := utils.ValidateTitle(title); err != nil {
				return invalid(c, err.Error())
			}
			p.Title = &title
		}
		if v, ok := raw["description"]; ok {
			var description string
			if err := sonic.Unmarshal(v, &description); err != nil {
				return invalid(c, "description must be a string")
			}
			p.Description = &description
		}
		if v, ok := raw["completed"]; ok {
			var completed bool
			if err := sonic.Unmarshal(v, &completed); err != nil {
				return invalid(c, "completed must be a boolean")
			}
			p.Completed = &completed
		}
		if v, ok := raw["priority"]; ok {
			var s string
			if err := sonic.Unmarshal(v, &s); err != nil {
				return invalid(c, "priority must be a string")
			}
			priority, valid := models.ParsePriority(s)
			if !valid {
				return invalid(c, "priority must be one of low, medium, high, urgent")
			}
			p.Priority = &priority
		}
		if v, ok := raw["dueDate"]; ok {
			if string(v) == "null" {
				p.ClearDueDate = true
			} else {
				var s string
				if err := sonic.Unmarshal(v, &s); err != nil {
					return invalid(c, "dueDate must be a datetime string or null")
				}
				due, err := utils.ParseDueDate(s)
				if err != nil {
					return invalid(c, err.Error())
				}
				p.DueDate = &due
			}
		}
		if v, ok := raw["tagIds"]; ok {
			var tagIDs []string
			if err := sonic.Unmarshal(v, &tagIDs); err != nil {
				return invalid(c, "tagIds must be an array of strings")
			}
			if tagIDs == nil {
				tagIDs = []string{}
			}
			p.TagIDs = tagIDs
		}

		task, err := st.UpdateTask(c.Request().Context(), currentUserID(c), c.Param("id"), p)
		if err != nil {
			return fail(c, logger, "updateTodo", err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func toggleTodo(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := st.ToggleTask(c.Request().Context(), currentUserID(c), c.Param("id"))
		if err != nil {
			return fail(c, logger, "toggleTodo", err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

type deleteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

func deleteTodo(st Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if err := st.DeleteTask(c.Request().Context(), currentUserID(c), id); err != nil {
			return fail(c, logger, "deleteTodo", err)
		}
		return c.JSON(http.StatusOK, deleteResponse{Success: true, ID: id})
	}
}
