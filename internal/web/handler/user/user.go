// Package user provides the /users endpoints.
package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pluserman/pluserman/internal/membership"
	"github.com/pluserman/pluserman/internal/web/handler"
)

const (
	// Path is the base path for users.
	Path = handler.RootPath + "users"

	// ParamUserID is the route parameter holding the userid.
	ParamUserID = "userid"

	// RouteUser is the route of a single user.
	RouteUser = Path + "/:" + ParamUserID
)

var _ handler.Service = (*Service)(nil)

// Service serves user records.
type Service struct {
	engine *membership.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, engine *membership.Service) error {
	if app == nil || engine == nil {
		return handler.ErrNilDependency
	}

	s.engine = engine

	app.Get(Path, s.List)
	app.Post(Path, s.Create)
	app.Get(RouteUser, s.Get)
	app.Put(RouteUser, s.Update)
	app.Delete(RouteUser, s.Delete)

	return nil
}

// List returns every userid.
func (s *Service) List(c *fiber.Ctx) error {
	ids, err := s.engine.UserList(c.UserContext())
	if err != nil {
		return handler.Error(handler.Status(err), err)
	}

	return c.JSON(ids)
}

// Create validates the json body and creates the user with its groups.
func (s *Service) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	in, err := s.engine.ValidateUserPayload(ctx, c.Body())
	if err != nil {
		return handler.Error(handler.Status(err), err)
	}

	if err = s.engine.UserCreate(ctx, *in); err != nil {
		return handler.Error(handler.Status(err), err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

// Get returns the user with its groups.
func (s *Service) Get(c *fiber.Ctx) error {
	detail, err := s.engine.UserDetails(c.UserContext(), c.Params(ParamUserID))
	if err != nil {
		return handler.Error(handler.Status(err), err)
	}

	return c.JSON(detail)
}

// Update is not supported. Unknown users still yield 404.
func (s *Service) Update(c *fiber.Ctx) error {
	userid := c.Params(ParamUserID)

	ok, err := s.engine.UserExists(c.UserContext(), userid)
	if err != nil {
		return handler.Error(handler.Status(err), err)
	}

	if !ok {
		return handler.Error(fiber.StatusNotFound, membership.ErrUserNotFound)
	}

	return fiber.ErrNotImplemented
}

// Delete removes the user and its memberships.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.engine.UserDelete(c.UserContext(), c.Params(ParamUserID)); err != nil {
		return handler.Error(handler.Status(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
