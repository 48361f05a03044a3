package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/UmutSen2662/Mono/internal/card"
	"github.com/UmutSen2662/Mono/internal/game"
)

// Terminal game against two bots, for poking at the rules without a
// browser. The real server lives in cmd/server.
func main() {
	m := game.NewMatch("local", "Terminal Mono", "")
	if err := m.AddPlayer("you", "You", false); err != nil {
		fmt.Println("setup failed:", err)
		return
	}
	_ = m.AddBot()
	_ = m.AddBot()
	_ = m.SetReady("you", true)
	if err := m.TryStartGame(); err != nil {
		fmt.Println("could not start:", err)
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		snap := m.Snapshot("you")
		cur := snap.Players[snap.CurrentPlayer]

		if cur.Bot {
			version, _, ok := m.BotPending()
			if !ok {
				return
			}
			res, err := m.BotTurn(version)
			if err != nil {
				fmt.Println("bot error:", err)
				return
			}
			after := m.Snapshot("you")
			fmt.Printf("%s: top is now %s, %d cards left\n",
				cur.Name, after.DiscardTop, handSizeOf(after, cur.ID))
			if res.Win {
				fmt.Printf("\n%s wins!\n", res.WinnerName)
				return
			}
			continue
		}

		fmt.Printf("\nTop: %s  deck: %d  pending: %d\n", snap.DiscardTop, snap.DeckSize, snap.PendingDraw)
		fmt.Printf("Hand: %s\n", strings.Join(snap.Players[snap.CurrentPlayer].Hand, " "))

		if snap.AwaitingColor {
			fmt.Print("pick a color (r/g/b/y): ")
			line, _ := reader.ReadString('\n')
			col, err := card.ParseColor(strings.TrimSpace(line))
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := m.PickColor("you", col); err != nil {
				fmt.Println(err)
			}
			continue
		}

		fmt.Print("play a card token, or 'd' to draw: ")
		line, _ := reader.ReadString('\n')
		input := strings.TrimSpace(line)
		if input == "d" {
			if err := m.DrawCard("you"); err != nil {
				fmt.Println(err)
			}
			continue
		}
		c, err := card.Parse(input)
		if err != nil {
			fmt.Println(err)
			continue
		}
		res, err := m.PlayCard("you", c)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if res.Win {
			fmt.Println("\nYou win!")
			return
		}
	}
}

func handSizeOf(snap game.Snapshot, playerID string) int {
	for _, p := range snap.Players {
		if p.ID == playerID {
			return p.HandSize
		}
	}
	return 0
}
