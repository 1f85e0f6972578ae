package layout

import "errors"

var ErrNoValidLayout = errors.New("layout: no valid layout")
