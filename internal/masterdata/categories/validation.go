package categories

import (
	"fmt"
	"strings"

	"github.com/mnzmnz10/yeter-sub001/internal/masterdata/shared"
)

func (s *Service) validate(c *Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: category name is required", shared.ErrValidation)
	}
	if c.SortOrder < 0 {
		c.SortOrder = 0
	}
	return nil
}
