// Package group provides the /groups endpoints.
package group

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/pluserman/pluserman/internal/membership"
	"github.com/pluserman/pluserman/internal/web/handler"
)

const (
	// Path is the base path for groups.
	Path = handler.RootPath + "groups"

	// ParamName is the route parameter holding the group name.
	ParamName = "name"

	// RouteGroup is the route of a single group.
	RouteGroup = Path + "/:" + ParamName
	// RouteMembers is the route for adding one member to a group.
	RouteMembers = RouteGroup + "/members"

	// msgEmptyName is reported when a group is created without a name.
	msgEmptyName = "group name can not be empty"
	// msgEmptyUserID is reported when a member is added without a userid.
	msgEmptyUserID = "userid can not be empty"
	// msgMembersBody is reported when the member list is not a json array of strings.
	msgMembersBody = "body must be a json array of userids"
)

var _ handler.Service = (*Service)(nil)

// createInput is accepted as form or json.
type createInput struct {
	Name string `json:"name" form:"name"`
}

// memberInput is the body of RouteMembers.
type memberInput struct {
	UserID string `json:"userid" form:"userid"`
}

// Service serves groups and their members.
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
	app.Get(RouteGroup, s.Members)
	app.Put(RouteGroup, s.SetMembers)
	app.Delete(RouteGroup, s.Delete)
	app.Post(RouteMembers, s.AddMember)

	return nil
}

// memberStatus reports unknown users in a member list as unprocessable.
func memberStatus(err error) int {
	if errors.Is(err, membership.ErrUserNotFound) {
		return fiber.StatusUnprocessableEntity
	}

	return handler.Status(err)
}

// List returns every group name.
func (s *Service) List(c *fiber.Ctx) error {
	names, err := s.engine.GroupList(c.UserContext())
	if err != nil {
		return handler.Error(handler.Status(err), err)
	}

	return c.JSON(names)
}

// Create creates an empty group from the name form field or json key.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput

	if err := c.BodyParser(&in); err != nil || in.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, msgEmptyName)
	}

	if err := s.engine.GroupCreate(c.UserContext(), in.Name); err != nil {
		return handler.Error(handler.Status(err), err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

// Members returns the userids of the group.
func (s *Service) Members(c *fiber.Ctx) error {
	ids, err := s.engine.GroupMembers(c.UserContext(), c.Params(ParamName))
	if err != nil {
		return handler.Error(handler.Status(err), err)
	}

	return c.JSON(ids)
}

// SetMembers replaces the member list with the json array in the body.
func (s *Service) SetMembers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	name := c.Params(ParamName)

	ok, err := s.engine.GroupExists(ctx, name)
	if err != nil {
		return handler.Error(handler.Status(err), err)
	}

	if !ok {
		return handler.Error(fiber.StatusNotFound, membership.ErrGroupNotFound)
	}

	var members []string
	if err = c.App().Config().JSONDecoder(c.Body(), &members); err != nil || members == nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, msgMembersBody)
	}

	if err = s.engine.GroupSetMembers(ctx, name, members); err != nil {
		return handler.Error(memberStatus(err), err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// AddMember adds a single user to the group.
func (s *Service) AddMember(c *fiber.Ctx) error {
	var in memberInput

	if err := c.BodyParser(&in); err != nil || in.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, msgEmptyUserID)
	}

	if err := s.engine.GroupAddMember(c.UserContext(), c.Params(ParamName), in.UserID); err != nil {
		return handler.Error(memberStatus(err), err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// Delete removes the group and its memberships.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.engine.GroupDelete(c.UserContext(), c.Params(ParamName)); err != nil {
		return handler.Error(handler.Status(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
