package room

// Publisher delivers state changes to whoever is watching: a full room
// snapshot to the room's members, and a change notification to the lobby
// broadcast group.
type Publisher interface {
	PublishRoom(roomID string)
	PublishLobby()
}

// NopPublisher discards everything. Used until a real transport attaches.
type NopPublisher struct{}

func (NopPublisher) PublishRoom(string) {}
func (NopPublisher) PublishLobby()      {}
