package companies

import (
	"fmt"
	"strings"

	"github.com/mnzmnz10/yeter-sub001/internal/masterdata/shared"
)

func (s *Service) validate(c *Company) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: company name is required", shared.ErrValidation)
	}
	c.Phone = strings.TrimSpace(c.Phone)
	return nil
}
