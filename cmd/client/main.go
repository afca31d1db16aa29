package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/checkers/internal/adapters/webapi"
	"github.com/kiryu-dev/checkers/internal/checkers"
	"github.com/kiryu-dev/checkers/internal/domain"
	"github.com/kiryu-dev/checkers/pkg/utils"
	"github.com/pkg/errors"
)

const (
	pollPeriod = time.Second
	usage      = `commands:
  signin NAME | signout | players
  play NAME | open ID | home | view
  move ROW COL ROW COL | backup | submit | check | wait | resign
  async | confirm | deny
  png FILE | quit`
)

var errUnknownCommand = errors.New("unknown command")

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	key := flag.String("key", uuid.NewString(), "client session key")
	flag.Parse()
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/game"}
	header := http.Header{domain.ClientUuidHeader: []string{*key}}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("dial: " + err.Error())
	}
	defer func() {
		_ = conn.Close()
	}()
	client := newClient(conn, webapi.New("http://"+*addr, *key))
	fmt.Println(usage)
	if err := client.handleActions(); err != nil {
		log.Fatal(err)
	}
}

type client struct {
	conn    *websocket.Conn
	api     poller
	scanner *bufio.Scanner
	color   checkers.Color
}

type poller interface {
	WaitForTurn(ctx context.Context, period time.Duration) error
	BoardImage(ctx context.Context) ([]byte, error)
}

func newClient(conn *websocket.Conn, api poller) *client {
	return &client{
		conn:    conn,
		api:     api,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (c *client) handleActions() error {
	for {
		fmt.Print("> ")
		if ok := c.scanner.Scan(); !ok {
			return c.scanner.Err()
		}
		fields := strings.Fields(c.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit":
			return nil
		case "wait":
			if err := c.api.WaitForTurn(context.Background(), pollPeriod); err != nil {
				fmt.Println(err)
				continue
			}
			fields = []string{"view"}
		case "png":
			if err := c.saveBoard(fields[1:]); err != nil {
				fmt.Println(err)
			}
			continue
		}
		msg, err := parseCommand(fields)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := c.conn.WriteJSON(msg); err != nil {
			return errors.WithMessage(err, "write json msg")
		}
		reply := new(domain.Message)
		if err := c.conn.ReadJSON(reply); err != nil {
			return errors.WithMessage(err, "read json msg")
		}
		if err := c.handleReply(reply); err != nil {
			return errors.WithMessagef(err, "handle '%v' reply", reply.Type)
		}
	}
}

func parseCommand(fields []string) (domain.Message, error) {
	args := fields[1:]
	switch fields[0] {
	case "signin":
		return domain.Message{Type: domain.SignIn, Payload: domain.SignInPayload{Name: strings.Join(args, " ")}}, nil
	case "signout":
		return domain.Message{Type: domain.SignOut}, nil
	case "players":
		return domain.Message{Type: domain.ListPlayers}, nil
	case "play":
		return domain.Message{Type: domain.StartGame, Payload: domain.StartGamePayload{Opponent: strings.Join(args, " ")}}, nil
	case "open", "home":
		id := -1
		if fields[0] == "open" {
			n, err := parseInts(args, 1)
			if err != nil {
				return domain.Message{}, err
			}
			id = n[0]
		}
		return domain.Message{Type: domain.OpenGame, Payload: domain.OpenGamePayload{GameID: id}}, nil
	case "view":
		return domain.Message{Type: domain.ViewGame}, nil
	case "move":
		n, err := parseInts(args, 4)
		if err != nil {
			return domain.Message{}, err
		}
		return domain.Message{Type: domain.ValidateMove, Payload: domain.MovePayload{
			Start: checkers.NewPosition(n[0], n[1]),
			End:   checkers.NewPosition(n[2], n[3]),
		}}, nil
	case "backup":
		return domain.Message{Type: domain.BackupMove}, nil
	case "submit":
		return domain.Message{Type: domain.SubmitTurn}, nil
	case "check":
		return domain.Message{Type: domain.CheckTurn}, nil
	case "resign":
		return domain.Message{Type: domain.Resign}, nil
	case "async":
		return domain.Message{Type: domain.StartAsync}, nil
	case "confirm":
		return domain.Message{Type: domain.ConfirmAsync}, nil
	case "deny":
		return domain.Message{Type: domain.DenyAsync}, nil
	}
	return domain.Message{}, errors.WithMessagef(errUnknownCommand, "'%s'", fields[0])
}

func parseInts(args []string, count int) ([]int, error) {
	if len(args) != count {
		return nil, errors.Errorf("expected %d numbers, got %d", count, len(args))
	}
	result := make([]int, 0, count)
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}

func (c *client) handleReply(msg *domain.Message) error {
	switch msg.Type {
	case domain.Reply:
		v, err := utils.UnmarshalJson[domain.Notice](msg.Payload)
		if err != nil {
			return err
		}
		fmt.Printf("[%s] %s\n", v.Type, v.Text)
	case domain.ErrorReply:
		v, err := utils.UnmarshalJson[domain.ErrorPayload](msg.Payload)
		if err != nil {
			return err
		}
		fmt.Println("error: " + v.Error)
	case domain.PlayersReply:
		v, err := utils.UnmarshalJson[domain.HomeView](msg.Payload)
		if err != nil {
			return err
		}
		c.printHome(v)
	case domain.GameViewReply:
		v, err := utils.UnmarshalJson[domain.GameView](msg.Payload)
		if err != nil {
			return err
		}
		c.printGame(v)
	}
	return nil
}

func (c *client) saveBoard(args []string) error {
	if len(args) != 1 {
		return errors.New("expected a file name")
	}
	data, err := c.api.BoardImage(context.Background())
	if err != nil {
		return err
	}
	return os.WriteFile(args[0], data, 0o644)
}

func (c *client) printHome(v domain.HomeView) {
	fmt.Printf("signed in as %s\n", v.Player)
	fmt.Printf("players: %s\n", strings.Join(v.Players, ", "))
	for _, game := range v.Games {
		fmt.Printf("  game %d against %s\n", game.GameID, game.Opponent)
	}
}

func (c *client) printGame(v domain.GameView) {
	if v.Viewer == v.Red {
		c.color = checkers.Red
	} else {
		c.color = checkers.White
	}
	fmt.Printf("\033[H\033[J")
	fmt.Printf("game %d: %s (RED) vs %s (WHITE), %s, %s to move\n",
		v.GameID, v.Red, v.White, v.State, v.ActiveColor)
	for _, row := range v.Board.Rows {
		fmt.Printf("%d ", row.Index)
		for _, space := range row.Spaces {
			fmt.Printf("%c", spaceRune(space))
		}
		fmt.Println()
	}
	fmt.Print("  ")
	for _, space := range v.Board.Rows[0].Spaces {
		fmt.Print(space.CellIdx)
	}
	fmt.Println()
	if v.Message != nil {
		fmt.Printf("[%s] %s\n", v.Message.Type, v.Message.Text)
	}
	if v.Winner != "" {
		fmt.Printf("%s won\n", v.Winner)
	}
	if v.AsyncRequest {
		fmt.Println("your opponent asks to switch to asynchronous mode: confirm or deny")
	}
	if v.ActiveColor == c.color && v.State == checkers.Active {
		fmt.Println("your turn")
	}
}

func spaceRune(space checkers.SpaceView) rune {
	switch {
	case space.Piece == nil && space.Color == checkers.SpaceBlack:
		return '.'
	case space.Piece == nil:
		return ' '
	}
	var r rune = 'r'
	if space.Piece.Color == checkers.White.String() {
		r = 'w'
	}
	if space.Piece.Type == checkers.King.String() {
		r -= 'a' - 'A'
	}
	return r
}
