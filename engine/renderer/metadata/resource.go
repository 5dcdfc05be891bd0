package metadata

import (
	"fmt"

	"github.com/google/uuid"
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	ResourceTypeNone ResourceType = iota
	/** @brief Wavefront model (.obj). */
	ResourceTypeModel
	/** @brief Material library (.mtl). */
	ResourceTypeMaterialLibrary
	/** @brief Image used as a texture. */
	ResourceTypeImage
)

/**
 * @brief Identifies a labeled asset produced by a load.
 * A handle is addressable by its (Path, Label) pair; the ID is unique per load.
 */
type Handle struct {
	/** @brief The unique identifier minted when the handle was reserved. */
	ID uuid.UUID
	/** @brief The source path of the load that produced the asset. */
	Path string
	/** @brief The label of the asset inside that load. */
	Label string
}

func NewHandle(path, label string) Handle {
	return Handle{ID: uuid.New(), Path: path, Label: label}
}

func (h Handle) IsValid() bool {
	return h.ID != uuid.Nil
}

// AssetPath renders the handle as "path#label".
func (h Handle) AssetPath() string {
	if h.Label == "" {
		return h.Path
	}
	return fmt.Sprintf("%s#%s", h.Path, h.Label)
}

func (h Handle) String() string {
	return fmt.Sprintf("%s (%s)", h.AssetPath(), h.ID)
}
