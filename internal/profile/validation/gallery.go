package validation

import "fmt"

// GalleryBounds parameterizes the allowed gallery size. The bounds are a
// per-usage configuration, not a global: onboarding asks for a fuller
// gallery than the settings edit screen does.
type GalleryBounds struct {
	Min int
	Max int
}

var (
	// OnboardingGalleryBounds is used when the gallery is first assembled.
	OnboardingGalleryBounds = GalleryBounds{Min: 5, Max: 12}
	// SettingsGalleryBounds is used when editing an existing gallery.
	SettingsGalleryBounds = GalleryBounds{Min: 1, Max: 12}
)

// ValidateGallery checks the item count against the bounds.
func ValidateGallery(itemCount int, bounds GalleryBounds) Result {
	var errs []string

	if itemCount < bounds.Min {
		errs = append(errs, fmt.Sprintf("Please add at least %d images.", bounds.Min))
	}
	if itemCount > bounds.Max {
		errs = append(errs, fmt.Sprintf("At most %d images are allowed.", bounds.Max))
	}

	return result(errs)
}
