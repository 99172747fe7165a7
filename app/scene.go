package app

//Simulation configuration: defaults, environment, flags and config files
//merged by viper and decoded with mapstructure.
import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"diesel.com/lattice/geometry"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//Mode selects the scalar field emitted each frame
type Mode string

const (
	ModeSpeed    Mode = "speed"
	ModeVortices Mode = "vortices"
)

//ParseMode accepts the two visualization modes, case-insensitively
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeSpeed, ModeVortices:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

//EnvPrefix for DIESEL_WIDTH, DIESEL_OBSTACLE_RADIUS, ...
const EnvPrefix = "DIESEL"

//ObstacleConfig - solid body placement. Nil centres use the lattice defaults.
type ObstacleConfig struct {
	Shape   string   `mapstructure:"shape" toml:"shape"`
	CenterX *float64 `mapstructure:"-" toml:"center_x,omitempty"`
	CenterY *float64 `mapstructure:"-" toml:"center_y,omitempty"`
	Radius  float64  `mapstructure:"radius" toml:"radius"`
}

//OutputConfig - where and what the headless run writes
type OutputConfig struct {
	Name    string `mapstructure:"name" toml:"name"`
	Dir     string `mapstructure:"dir" toml:"dir"`
	Heatmap bool   `mapstructure:"heatmap" toml:"heatmap"`
	GIF     bool   `mapstructure:"gif" toml:"gif"`
	Chart   bool   `mapstructure:"chart" toml:"chart"`
	Palette string `mapstructure:"palette" toml:"palette"` //empty picks per mode
	Scale   int    `mapstructure:"scale" toml:"scale"`     //gif pixels per cell
}

//Config is immutable once a Simulation is built from it
type Config struct {
	Width             int            `mapstructure:"width" toml:"width"`
	Height            int            `mapstructure:"height" toml:"height"`
	Obstacle          ObstacleConfig `mapstructure:"obstacle" toml:"obstacle"`
	Timescale         float64        `mapstructure:"timescale" toml:"timescale"`
	WallBoundary      bool           `mapstructure:"wall_boundary" toml:"wall_boundary"`
	Perturbations     bool           `mapstructure:"perturbations" toml:"perturbations"`
	Timesteps         int            `mapstructure:"timesteps" toml:"timesteps"`
	Stride            int            `mapstructure:"stride" toml:"stride"`
	Mode              Mode           `mapstructure:"mode" toml:"mode"`
	Output            OutputConfig   `mapstructure:"output" toml:"output"`
	Seed              int64          `mapstructure:"seed" toml:"seed"`
	Workers           int            `mapstructure:"workers" toml:"workers"`
	HaltOnInstability bool           `mapstructure:"halt_on_instability" toml:"halt_on_instability"`
	LogLevel          string         `mapstructure:"log_level" toml:"log_level"`
}

//defaults mirrors DefaultConfig for viper
var defaults = map[string]interface{}{
	"width":               400,
	"height":              100,
	"obstacle.shape":      geometry.ShapeCylinder,
	"obstacle.radius":     geometry.DefaultRadius,
	"timescale":           0.6,
	"wall_boundary":       true,
	"perturbations":       true,
	"timesteps":           1000,
	"stride":              5,
	"mode":                string(ModeSpeed),
	"output.name":         "LatticeBoltzmann",
	"output.dir":          "images",
	"output.heatmap":      true,
	"output.gif":          false,
	"output.chart":        false,
	"output.palette":      "",
	"output.scale":        2,
	"seed":                42,
	"workers":             0,
	"halt_on_instability": false,
	"log_level":           "info",
}

//optional keys without defaults, decoded by hand through cast
const (
	keyCenterX = "obstacle.center_x"
	keyCenterY = "obstacle.center_y"
)

//DefaultConfig is the reference 400x100 cylinder run
func DefaultConfig() Config {
	return Config{
		Width:  400,
		Height: 100,
		Obstacle: ObstacleConfig{
			Shape:  geometry.ShapeCylinder,
			Radius: geometry.DefaultRadius,
		},
		Timescale:     0.6,
		WallBoundary:  true,
		Perturbations: true,
		Timesteps:     1000,
		Stride:        5,
		Mode:          ModeSpeed,
		Output: OutputConfig{
			Name:    "LatticeBoltzmann",
			Dir:     "images",
			Heatmap: true,
			Scale:   2,
		},
		Seed:     42,
		LogLevel: "info",
	}
}

//NewViper returns a viper instance with defaults and DIESEL_* environment
//lookups. fs backs config file reads; nil uses the OS.
func NewViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keyCenterX)
	_ = v.BindEnv(keyCenterY)
	return v
}

//flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"width":         "width",
	"height":        "height",
	"shape":         "obstacle.shape",
	"center-x":      keyCenterX,
	"center-y":      keyCenterY,
	"radius":        "obstacle.radius",
	"timescale":     "timescale",
	"wall-boundary": "wall_boundary",
	"perturbations": "perturbations",
	"timesteps":     "timesteps",
	"stride":        "stride",
	"mode":          "mode",
	"name":          "output.name",
	"output-dir":    "output.dir",
	"heatmap":       "output.heatmap",
	"gif":           "output.gif",
	"chart":         "output.chart",
	"palette":       "output.palette",
	"seed":          "seed",
	"workers":       "workers",
	"halt":          "halt_on_instability",
}

//RegisterFlags adds the simulation flags to fs. Defaults shown in help come
//from DefaultConfig; only flags the user sets override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.Int("width", d.Width, "lattice width (NX)")
	fs.Int("height", d.Height, "lattice height (NY)")
	fs.String("shape", d.Obstacle.Shape, "obstacle shape: cylinder, square or airfoil")
	fs.Float64("center-x", 0, "obstacle centre x (default NX/4)")
	fs.Float64("center-y", 0, "obstacle centre y before halving (default NY/2)")
	fs.Float64("radius", d.Obstacle.Radius, "obstacle radius in cells")
	fs.Float64("timescale", d.Timescale, "BGK relaxation time tau")
	fs.Bool("wall-boundary", d.WallBoundary, "absorbing wall on the x edges")
	fs.Bool("perturbations", d.Perturbations, "add N(0, 0.01^2) noise to the initial field")
	fs.Int("timesteps", d.Timesteps, "last timestep (runs 0..timesteps inclusive)")
	fs.Int("stride", d.Stride, "emit a frame every stride steps")
	fs.String("mode", string(d.Mode), "visualization mode: speed or vortices")
	fs.String("name", d.Output.Name, "output file name prefix")
	fs.String("output-dir", d.Output.Dir, "output directory")
	fs.Bool("heatmap", d.Output.Heatmap, "write the final frame heatmap")
	fs.Bool("gif", d.Output.GIF, "write an animated gif of all frames")
	fs.Bool("chart", d.Output.Chart, "write a mass and max speed chart")
	fs.String("palette", d.Output.Palette, "palette name (default per mode)")
	fs.Int64("seed", d.Seed, "random seed for the initial perturbation")
	fs.Int("workers", d.Workers, "row workers per sub-step (0 uses GOMAXPROCS)")
	fs.Bool("halt", d.HaltOnInstability, "stop at the first unstable step")
}

//BindFlags binds every registered flag present in fs to its key
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

//modeHook normalises case and spacing of mode strings. Validate rejects
//unknown values.
func modeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(Mode("")) {
			return data, nil
		}
		return Mode(strings.ToLower(strings.TrimSpace(data.(string)))), nil
	}
}

//optionalFloat reads a key that may be unset
func optionalFloat(v *viper.Viper, key string) (*float64, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	raw := v.Get(key)
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return &f, nil
}

//LoadConfig reads path (if non-empty) into v, decodes and validates it.
//Precedence: flags, environment, file, defaults.
func LoadConfig(v *viper.Viper, path string) (Config, error) {
	var cfg Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg, viper.DecodeHook(modeHook())); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	var err error
	if cfg.Obstacle.CenterX, err = optionalFloat(v, keyCenterX); err != nil {
		return cfg, err
	}
	if cfg.Obstacle.CenterY, err = optionalFloat(v, keyCenterY); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

//Validate rejects configurations that cannot produce a run. Mode is
//checked first.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	var problems problemList
	if c.Width < 3 || c.Height < 3 {
		problems = append(problems, fmt.Errorf("lattice %dx%d smaller than 3x3", c.Width, c.Height))
	}
	if !(c.Timescale > 0) {
		problems = append(problems, errors.New("timescale must be positive"))
	}
	if c.Timesteps < 0 {
		problems = append(problems, errors.New("timesteps must not be negative"))
	}
	if c.Stride < 1 {
		problems = append(problems, errors.New("stride must be at least 1"))
	}
	if !(c.Obstacle.Radius > 0) {
		problems = append(problems, fmt.Errorf("%w: obstacle radius %g", geometry.ErrBadRadius, c.Obstacle.Radius))
	}
	switch strings.ToLower(c.Obstacle.Shape) {
	case "", geometry.ShapeCylinder, geometry.ShapeSquare, geometry.ShapeAirfoil:
	default:
		problems = append(problems, fmt.Errorf("%w %q", geometry.ErrUnknownShape, c.Obstacle.Shape))
	}
	if c.Workers < 0 {
		problems = append(problems, errors.New("workers must not be negative"))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, problems)
	}
	return nil
}

//ObstacleSpec converts the obstacle section for the geometry package
func (c Config) ObstacleSpec() geometry.ObstacleSpec {
	return geometry.ObstacleSpec{
		Shape: c.Obstacle.Shape,
		CylinderSpec: geometry.CylinderSpec{
			CenterX: c.Obstacle.CenterX,
			CenterY: c.Obstacle.CenterY,
			Radius:  c.Obstacle.Radius,
		},
	}
}

//Summary lists the run details in the order used for file names
func (c Config) Summary() []string {
	return []string{
		fmt.Sprintf("%dx%d", c.Width, c.Height),
		strconv.Itoa(c.Timesteps),
		strconv.FormatFloat(c.Timescale, 'g', -1, 64),
		strconv.FormatBool(c.WallBoundary),
	}
}

//OutputName builds "<name>__<NX>x<NY>_<T>_<tau>_<wall>_<mode>"
func (c Config) OutputName() string {
	var b strings.Builder
	b.WriteString(c.Output.Name)
	b.WriteString("_")
	for _, s := range c.Summary() {
		b.WriteString("_")
		b.WriteString(s)
	}
	b.WriteString("_")
	b.WriteString(string(c.Mode))
	return b.String()
}
