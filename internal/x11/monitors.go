package x11

import (
	"fmt"
	"sort"

	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/BurntSushi/xgb/randr"
)

// Monitor is one active RandR CRTC.
type Monitor struct {
	ID      int
	Name    string
	Primary bool
	Bounds  geometry.Rect
}

// GetMonitors lists active monitors. The primary output comes first; the
// rest keep CRTC order.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		mon := Monitor{
			ID:   i,
			Name: fmt.Sprintf("Monitor%d", i),
			Bounds: geometry.Rect{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
		}
		for _, out := range info.Outputs {
			if primary != 0 && out == primary {
				mon.Primary = true
			}
		}
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			mon.Name = string(out.Name)
		}
		monitors = append(monitors, mon)
	}

	sort.SliceStable(monitors, func(i, j int) bool {
		return monitors[i].Primary && !monitors[j].Primary
	})
	return monitors, nil
}
