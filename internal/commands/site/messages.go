package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	generateSitemapMessageType = "blog.site.generate_sitemap"
	generateFeedMessageType    = "blog.site.generate_feed"
	checkContentMessageType    = "blog.site.check_content"
)

var notBlank = validation.By(func(value any) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return validation.NewError("blog.site.output_path_required", "output path is required")
	}
	return nil
})

// GenerateSitemapCommand writes sitemap.xml for the current catalog.
type GenerateSitemapCommand struct {
	OutputPath string `json:"output_path"`
}

// Type implements command.Message.
func (GenerateSitemapCommand) Type() string { return generateSitemapMessageType }

func (cmd GenerateSitemapCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputPath, validation.Required, notBlank),
	)
}

// GenerateFeedCommand writes an RSS feed with at most Limit items. A zero
// Limit uses the generator default.
type GenerateFeedCommand struct {
	OutputPath string `json:"output_path"`
	Limit      int    `json:"limit,omitempty"`
}

// Type implements command.Message.
func (GenerateFeedCommand) Type() string { return generateFeedMessageType }

func (cmd GenerateFeedCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputPath, validation.Required, notBlank),
		validation.Field(&cmd.Limit, validation.Min(0)),
	)
}

// CheckContentCommand audits every source file. Strict turns any finding
// into a command failure.
type CheckContentCommand struct {
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (CheckContentCommand) Type() string { return checkContentMessageType }

func (CheckContentCommand) Validate() error { return nil }
