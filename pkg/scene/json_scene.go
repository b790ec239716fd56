package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/geometry"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/material"
)

// ErrInvalidScene wraps every validation failure reported by the JSON loader
var ErrInvalidScene = errors.New("invalid scene")

// Vec3Cfg is a vector written as a three element JSON array
type Vec3Cfg [3]float32

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg describes the camera either as a look-at rig or as a raw image plane.
// Look-at is used when LookFrom is set.
type CameraCfg struct {
	LookFrom *Vec3Cfg `json:"lookFrom,omitempty"`
	LookAt   Vec3Cfg  `json:"lookAt"`
	Vup      *Vec3Cfg `json:"vup,omitempty"` // defaults to +Y
	VFov     float32  `json:"vfov,omitempty"`

	Origin          *Vec3Cfg `json:"origin,omitempty"`
	LowerLeftCorner Vec3Cfg  `json:"lowerLeftCorner"`
	Horizontal      Vec3Cfg  `json:"horizontal"`
	Vertical        Vec3Cfg  `json:"vertical"`
}

type MaterialCfg struct {
	Type      string  `json:"type"` // lambertian, metal or dielectric
	Albedo    Vec3Cfg `json:"albedo"`
	Fuzziness float32 `json:"fuzziness,omitempty"`
	IOR       float32 `json:"ior,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg     `json:"center"`
	Radius   float32     `json:"radius"`
	Material MaterialCfg `json:"material"`
}

type SkyCfg struct {
	Top    *Vec3Cfg `json:"top,omitempty"`
	Bottom *Vec3Cfg `json:"bottom,omitempty"`
}

// SceneFile is the on-disk JSON scene document
type SceneFile struct {
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	SamplesPerPixel int         `json:"samplesPerPixel"`
	MaxDepth        int         `json:"maxDepth"`
	Seed            uint64      `json:"seed,omitempty"`
	Camera          *CameraCfg  `json:"camera,omitempty"` // nil selects the default camera
	Sky             *SkyCfg     `json:"sky,omitempty"`
	Spheres         []SphereCfg `json:"spheres"`
}

// LoadJSONScene reads and validates a JSON scene file
func LoadJSONScene(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseJSONScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseJSONScene decodes a JSON scene document and builds the scene it describes
func ParseJSONScene(r io.Reader) (*Scene, error) {
	var cfg SceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return cfg.Build()
}

// Build validates the document and converts it into a scene
func (cfg SceneFile) Build() (*Scene, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidScene, cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("%w: samplesPerPixel must be positive, got %d", ErrInvalidScene, cfg.SamplesPerPixel)
	}
	if cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("%w: maxDepth must be positive, got %d", ErrInvalidScene, cfg.MaxDepth)
	}

	samplingConfig := SamplingConfig{
		Width:           cfg.Width,
		Height:          cfg.Height,
		SamplesPerPixel: cfg.SamplesPerPixel,
		MaxDepth:        cfg.MaxDepth,
		Seed:            cfg.Seed,
	}
	aspectRatio := float32(cfg.Width) / float32(cfg.Height)

	camera, err := cfg.Camera.build(aspectRatio)
	if err != nil {
		return nil, err
	}

	s := NewScene(camera, samplingConfig)
	if cfg.Sky != nil {
		if cfg.Sky.Top != nil {
			s.TopColor = cfg.Sky.Top.vec()
		}
		if cfg.Sky.Bottom != nil {
			s.BottomColor = cfg.Sky.Bottom.vec()
		}
	}

	for i, sphere := range cfg.Spheres {
		if sphere.Radius == 0 {
			return nil, fmt.Errorf("%w: sphere %d has zero radius", ErrInvalidScene, i)
		}
		mat, err := sphere.Material.build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sphere.Center.vec(), sphere.Radius, mat)
	}

	return s, nil
}

func (c *CameraCfg) build(aspectRatio float32) (*geometry.Camera, error) {
	switch {
	case c == nil:
		return geometry.NewDefaultCamera(aspectRatio), nil
	case c.LookFrom != nil:
		if c.VFov <= 0 || c.VFov >= 180 {
			return nil, fmt.Errorf("%w: vfov must be in (0, 180), got %g", ErrInvalidScene, c.VFov)
		}
		if c.LookFrom.vec() == c.LookAt.vec() {
			return nil, fmt.Errorf("%w: lookFrom and lookAt coincide", ErrInvalidScene)
		}
		vup := core.NewVec3(0, 1, 0)
		if c.Vup != nil {
			vup = c.Vup.vec()
		}
		return geometry.NewLookAtCamera(c.LookFrom.vec(), c.LookAt.vec(), vup, c.VFov, aspectRatio), nil
	case c.Origin != nil:
		return geometry.NewCamera(c.Origin.vec(), c.LowerLeftCorner.vec(), c.Horizontal.vec(), c.Vertical.vec()), nil
	default:
		return nil, fmt.Errorf("%w: camera needs either lookFrom or origin", ErrInvalidScene)
	}
}

func (m MaterialCfg) build() (material.Material, error) {
	checkAlbedo := func() error {
		for _, c := range m.Albedo {
			if c < 0 || c > 1 {
				return fmt.Errorf("%w: albedo %v outside [0, 1]", ErrInvalidScene, m.Albedo)
			}
		}
		return nil
	}

	switch m.Type {
	case "lambertian":
		if err := checkAlbedo(); err != nil {
			return nil, err
		}
		return material.NewLambertian(m.Albedo.vec()), nil
	case "metal":
		if err := checkAlbedo(); err != nil {
			return nil, err
		}
		if m.Fuzziness < 0 || m.Fuzziness > 1 {
			return nil, fmt.Errorf("%w: fuzziness %g outside [0, 1]", ErrInvalidScene, m.Fuzziness)
		}
		return material.NewMetal(m.Albedo.vec(), m.Fuzziness), nil
	case "dielectric":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("%w: ior must be positive, got %g", ErrInvalidScene, m.IOR)
		}
		return material.NewDielectric(m.IOR), nil
	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidScene, m.Type)
	}
}
