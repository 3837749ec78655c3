package category

import (
	"strings"
	"time"

	"github.com/frahmantamala/finance-app/internal/core/common/validation"
	"github.com/frahmantamala/finance-app/internal/core/datamodel"
	categoryDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/category"
	"github.com/google/uuid"
)

const (
	DefaultIcon          = "shopping-cart"
	DefaultBadgeColor    = "#137fec"
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Icon        string     `json:"icon"`
	BadgeColor  string     `json:"badge_color"`
	UserID      string     `json:"user_id"`
	IsTemplate  bool       `json:"is_template"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	IsDeleted   bool       `json:"-"`
}

// NewCategory builds a user-owned category. Nil icon and badge color fall back to the defaults.
func NewCategory(name, userID string, description, icon, badgeColor *string) (*Category, error) {
	v := validation.NewValidator()
	v.Field("user_id", userID).Required()
	if err := v.Validate(); err != nil {
		return nil, err
	}

	c := &Category{ID: uuid.New(), UserID: userID, Icon: DefaultIcon, BadgeColor: DefaultBadgeColor}
	if err := c.UpdateName(name); err != nil {
		return nil, err
	}
	if err := c.UpdateDescription(description); err != nil {
		return nil, err
	}
	c.UpdateIcon(icon)
	if badgeColor != nil {
		if err := c.UpdateBadgeColor(*badgeColor); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewTemplateCategory builds an ownerless category copied into new users' sets.
func NewTemplateCategory(name string, description *string) (*Category, error) {
	c := &Category{ID: uuid.New(), Icon: DefaultIcon, BadgeColor: DefaultBadgeColor, IsTemplate: true}
	if err := c.UpdateName(name); err != nil {
		return nil, err
	}
	if err := c.UpdateDescription(description); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) UpdateName(name string) error {
	v := validation.NewValidator()
	v.Field("name", name).Required().MaxLength(MaxNameLength)
	if err := v.Validate(); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	return nil
}

func (c *Category) UpdateDescription(description *string) error {
	v := validation.NewValidator()
	v.Field("description", description).MaxLength(MaxDescriptionLength)
	if err := v.Validate(); err != nil {
		return err
	}
	c.Description = description
	return nil
}

func (c *Category) UpdateIcon(icon *string) {
	if icon == nil || strings.TrimSpace(*icon) == "" {
		c.Icon = DefaultIcon
		return
	}
	c.Icon = strings.TrimSpace(*icon)
}

func (c *Category) UpdateBadgeColor(color string) error {
	v := validation.NewValidator()
	v.Field("badge_color", color).Required().HexColor()
	if err := v.Validate(); err != nil {
		return err
	}
	c.BadgeColor = color
	return nil
}

func (c *Category) OwnedBy(userID string) bool {
	return !c.IsTemplate && userID != "" && c.UserID == userID
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		BadgeColor:  c.BadgeColor,
	}
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		Base: datamodel.Base{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			IsDeleted: c.IsDeleted,
		},
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		BadgeColor:  c.BadgeColor,
		UserID:      c.UserID,
		IsTemplate:  c.IsTemplate,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		BadgeColor:  c.BadgeColor,
		UserID:      c.UserID,
		IsTemplate:  c.IsTemplate,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		IsDeleted:   c.IsDeleted,
	}
}

func FromDataModelSlice(rows []categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(rows))
	for i := range rows {
		result[i] = FromDataModel(&rows[i])
	}
	return result
}

// syncBack copies the audit fields stamped on a committed row onto the domain value.
func (c *Category) syncBack(row *categoryDatamodel.Category) {
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	c.IsDeleted = row.IsDeleted
}
