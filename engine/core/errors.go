package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat        = errors.New("invalid obj format")
	ErrFetch                = errors.New("failed to fetch asset")
	ErrNotFound             = errors.New("asset not found")
	ErrDecode               = errors.New("failed to decode image")
	ErrChunk                = errors.New("failed to chunk vertex attribute")
	ErrReference            = errors.New("unresolved material library reference")
	ErrLabelCollision       = errors.New("labeled asset already registered")
	ErrUnsupportedExtension = errors.New("no loader registered for extension")
	ErrUnknown              = errors.New("unknown")
)

// ErrorKind tags the stage outcome that aborted a load.
type ErrorKind uint8

const (
	ErrorKindInvalidFormat ErrorKind = iota
	ErrorKindFetch
	ErrorKindDecode
	ErrorKindChunk
	ErrorKindReference
	ErrorKindLabelCollision
)

func (k ErrorKind) sentinel() error {
	switch k {
	case ErrorKindInvalidFormat:
		return ErrInvalidFormat
	case ErrorKindFetch:
		return ErrFetch
	case ErrorKindDecode:
		return ErrDecode
	case ErrorKindChunk:
		return ErrChunk
	case ErrorKindReference:
		return ErrReference
	case ErrorKindLabelCollision:
		return ErrLabelCollision
	default:
		return ErrUnknown
	}
}

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindInvalidFormat:
		return "ParseError"
	case ErrorKindFetch:
		return "FetchError"
	case ErrorKindDecode:
		return "DecodeError"
	case ErrorKindChunk:
		return "ChunkError"
	case ErrorKindReference:
		return "ReferenceError"
	case ErrorKindLabelCollision:
		return "LabelCollision"
	default:
		return "Unknown"
	}
}

// LoadStage is one step of the obj load state machine.
type LoadStage uint8

const (
	LoadStageScan LoadStage = iota
	LoadStageResolveMaterialLibs
	LoadStageParseGeometry
	// textures are resolved while the materials using them are built
	LoadStageResolveTextures
	LoadStageBuildMeshes
	LoadStageAssembleScene
	LoadStageDone
	LoadStageFailed
)

func (s LoadStage) String() string {
	switch s {
	case LoadStageScan:
		return "Scan"
	case LoadStageResolveMaterialLibs:
		return "ResolveMaterialLibs"
	case LoadStageParseGeometry:
		return "ParseGeometry"
	case LoadStageResolveTextures:
		return "ResolveTextures∥BuildMaterials"
	case LoadStageBuildMeshes:
		return "BuildMeshes"
	case LoadStageAssembleScene:
		return "AssembleScene"
	case LoadStageDone:
		return "Done"
	default:
		return "Failed"
	}
}

// LoadError is the tagged outcome of a failed load stage.
// errors.Is matches it against the sentinel of its Kind as well as the wrapped cause.
type LoadError struct {
	Kind  ErrorKind
	Stage LoadStage
	// Path is the asset path involved, if any.
	Path string
	Err  error
}

func NewLoadError(kind ErrorKind, stage LoadStage, path string, err error) *LoadError {
	return &LoadError{Kind: kind, Stage: stage, Path: path, Err: err}
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s during %s", e.Kind, e.Stage)
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == e.Kind.sentinel()
}
