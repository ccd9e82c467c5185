package room

// Broadcaster fans a message out to every client watching a room.
type Broadcaster interface {
	Broadcast(roomCode string, action string, data interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, interface{}) {}
