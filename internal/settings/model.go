package settings

type MenuCategory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type MenuType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// QuickAccess is a configurable shortcut button: name, icon, color and the
// client route key it opens.
type QuickAccess struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	URLKey   string `json:"url_key"`
	Position int    `json:"position"`
}

// defaultQuickAccesses is the factory set restored by the reset endpoint.
var defaultQuickAccesses = []QuickAccess{
	{Name: "Add to stock", Icon: "Plus", Color: "primary", URLKey: "add_to_stock", Position: 0},
	{Name: "Take from stock", Icon: "Minus", Color: "warning", URLKey: "take_from_stock", Position: 1},
	{Name: "Register a loss", Icon: "Trash", Color: "error", URLKey: "register_loss", Position: 2},
	{Name: "Move stock", Icon: "ArrowRightLeft", Color: "info", URLKey: "move_stock", Position: 3},
}
