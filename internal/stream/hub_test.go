package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type HubSuite struct {
	suite.Suite

	hub    *Hub
	server *httptest.Server
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub()
	s.server = httptest.NewServer(s.hub)
}

func (s *HubSuite) TearDownTest() {
	s.server.Close()
}

func (s *HubSuite) dial(query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws" + query

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)

	s.T().Cleanup(func() { _ = conn.Close() })
	return conn
}

func (s *HubSuite) read(conn *websocket.Conn) Event {
	var event Event

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	s.Require().NoError(conn.ReadJSON(&event))

	return event
}

func (s *HubSuite) waitForRoom(room string, size int) {
	s.Eventually(func() bool {
		return s.hub.RoomSize(room) == size
	}, 5*time.Second, 10*time.Millisecond)
}

func (s *HubSuite) TestJoinWithQueryAndReceiveOutput() {
	conn := s.dial("?session=abc")
	s.waitForRoom("abc", 1)

	s.NoError(s.hub.Publish(Command("abc", CommandStart)))
	s.NoError(s.hub.Publish(Output("abc", "hello")))
	s.NoError(s.hub.Publish(Output("other", "not for us")))
	s.NoError(s.hub.Publish(Command("abc", CommandEnd)))

	s.Equal(Command("abc", CommandStart), s.read(conn))
	s.Equal(Output("abc", "hello"), s.read(conn))
	s.Equal(Command("abc", CommandEnd), s.read(conn))
}

func (s *HubSuite) TestJoinLeaveMessages() {
	conn := s.dial("")

	s.NoError(conn.WriteJSON(clientMessage{Type: joinMessage, Room: "room-1"}))
	s.waitForRoom("room-1", 1)

	s.NoError(conn.WriteJSON(clientMessage{Type: joinMessage, Room: "room-2"}))
	s.waitForRoom("room-2", 1)
	s.Equal(0, s.hub.RoomSize("room-1"))

	s.NoError(conn.WriteJSON(clientMessage{Type: leaveMessage}))
	s.waitForRoom("room-2", 0)
}

func (s *HubSuite) TestEditsAreBroadcastToTheRoom() {
	first := s.dial("?session=shared")
	second := s.dial("?session=shared")
	s.waitForRoom("shared", 2)

	s.NoError(first.WriteJSON(clientMessage{Type: editMessage, Language: "python", Code: "print(1)"}))

	for _, conn := range []*websocket.Conn{first, second} {
		event := s.read(conn)

		s.Equal(EditEvent, event.Type)
		s.Equal("shared", event.SessionID)
		s.Equal("print(1)", event.Code)
		s.NotEmpty(event.SenderID)
	}
}

func (s *HubSuite) TestDisconnectLeavesRoom() {
	conn := s.dial("?session=gone")
	s.waitForRoom("gone", 1)

	s.NoError(conn.Close())
	s.waitForRoom("gone", 0)
}

func (s *HubSuite) TestRelayEvent() {
	conn := s.dial("?session=relayed")
	s.waitForRoom("relayed", 1)

	s.NoError(relayEvent([]byte(`{"session_id":"relayed","type":"output","output":"from worker"}`), s.hub))
	s.NoError(relayEvent([]byte(`not json`), s.hub))

	s.Equal(Output("relayed", "from worker"), s.read(conn))
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}
