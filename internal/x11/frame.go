package x11

import (
	"github.com/1broseidon/winstate/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// FrameExtents is the size of the window manager decoration on each side of
// a client window (_NET_FRAME_EXTENTS).
type FrameExtents struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// FrameRect returns the outer frame of a client rect in root coordinates.
func FrameRect(client geometry.Rect, ext FrameExtents) geometry.Rect {
	return geometry.Rect{
		X:      client.X - ext.Left,
		Y:      client.Y - ext.Top,
		Width:  client.Width + ext.Left + ext.Right,
		Height: client.Height + ext.Top + ext.Bottom,
	}
}

// ClientRect is the inverse of FrameRect. The size never drops below 1x1.
func ClientRect(frame geometry.Rect, ext FrameExtents) geometry.Rect {
	return geometry.Rect{
		X:      frame.X + ext.Left,
		Y:      frame.Y + ext.Top,
		Width:  max(frame.Width-ext.Left-ext.Right, 1),
		Height: max(frame.Height-ext.Top-ext.Bottom, 1),
	}
}

// frameExtents reads _NET_FRAME_EXTENTS. Undecorated windows and window
// managers that do not publish the property have no extents.
func (c *Connection) frameExtents(windowID xproto.Window) FrameExtents {
	ext, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil || ext == nil {
		return FrameExtents{}
	}
	return FrameExtents{Left: ext.Left, Right: ext.Right, Top: ext.Top, Bottom: ext.Bottom}
}

// clientRect returns the client area in root coordinates.
func (c *Connection) clientRect(windowID xproto.Window) (geometry.Rect, error) {
	conn := c.XUtil.Conn()
	geom, err := xproto.GetGeometry(conn, xproto.Drawable(windowID)).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	translate, err := xproto.TranslateCoordinates(conn, windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}
