package http

// CreateRoomRequest is the payload for POST /rooms.
type CreateRoomRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// JoinRoomRequest is the payload for POST /rooms/:id/join.
type JoinRoomRequest struct {
	Password string `json:"password"`
}

// UpdateNameRequest is the payload for POST /name.
type UpdateNameRequest struct {
	Name string `json:"name"`
}

// RoomListEntry is one row of the lobby room list.
type RoomListEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Players     int    `json:"players"`
	HasPassword bool   `json:"hasPassword"`
}
