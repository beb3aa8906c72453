package room

type Room struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Code   string  `json:"code"`
	Tables []Table `json:"tables"`
}

type Table struct {
	ID       string `json:"id"`
	RoomID   string `json:"room_id"`
	Label    string `json:"label"`
	Seats    int    `json:"seats"`
	Occupied bool   `json:"occupied"`
}
