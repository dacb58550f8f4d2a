package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cardroom/cardroom/internal/randutil"
	"github.com/cardroom/cardroom/poker"
)

type OddsCmd struct {
	Hands      []string `arg:"" help:"Player hands in format 'AcKd' (space separated)" required:"true"`
	Board      string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Iterations int      `short:"i" default:"100000" help:"Number of Monte Carlo iterations"`
	Seed       *int64   `help:"Random seed for reproducible results"`
}

type oddsResult struct {
	Hand []poker.Card
	Wins int
	Ties int
}

func (c *OddsCmd) Run() error {
	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)

	hands, err := parseHands(c.Hands)
	if err != nil {
		return err
	}

	var board []poker.Card
	if c.Board != "" {
		board, err = poker.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parsing board: %w", err)
		}
		if len(board) > 5 {
			return fmt.Errorf("board cannot have more than 5 cards")
		}
	}
	if err := validateNoDuplicates(hands, board); err != nil {
		return err
	}

	results := simulate(hands, board, c.Iterations, rng)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "hand\twin\ttie")
	for _, result := range results {
		fmt.Fprintf(w, "%s\t%.1f%%\t%.1f%%\n",
			formatCards(result.Hand),
			float64(result.Wins)/float64(c.Iterations)*100,
			float64(result.Ties)/float64(c.Iterations)*100)
	}
	return w.Flush()
}

func parseHands(handStrings []string) ([][]poker.Card, error) {
	hands := make([][]poker.Card, 0, len(handStrings))
	for i, handStr := range handStrings {
		hand, err := poker.ParseCards(strings.ReplaceAll(strings.TrimSpace(handStr), " ", ""))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func validateNoDuplicates(hands [][]poker.Card, board []poker.Card) error {
	seen := make(map[poker.Card]bool)
	for _, card := range board {
		if seen[card] {
			return fmt.Errorf("duplicate card: %s", card)
		}
		seen[card] = true
	}
	for i, hand := range hands {
		for _, card := range hand {
			if seen[card] {
				return fmt.Errorf("duplicate card in hand %d: %s", i+1, card)
			}
			seen[card] = true
		}
	}
	return nil
}

func simulate(hands [][]poker.Card, board []poker.Card, iterations int, rng *rand.Rand) []oddsResult {
	results := make([]oddsResult, len(hands))
	for i := range results {
		results[i].Hand = hands[i]
	}

	used := make(map[poker.Card]bool)
	for _, card := range board {
		used[card] = true
	}
	for _, hand := range hands {
		for _, card := range hand {
			used[card] = true
		}
	}
	var available []poker.Card
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			card := poker.Card{Suit: suit, Rank: rank}
			if !used[card] {
				available = append(available, card)
			}
		}
	}

	needed := 5 - len(board)
	ranked := make([]poker.RankedHand, len(hands))
	for range iterations {
		rng.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})
		fullBoard := append(append([]poker.Card(nil), board...), available[:needed]...)

		for i, hand := range hands {
			ranked[i] = poker.Evaluate(append(append([]poker.Card(nil), hand...), fullBoard...))
		}

		best := ranked[0]
		for _, r := range ranked[1:] {
			if r.Compare(best) > 0 {
				best = r
			}
		}
		winners := 0
		for _, r := range ranked {
			if r.Compare(best) == 0 {
				winners++
			}
		}
		for i, r := range ranked {
			if r.Compare(best) != 0 {
				continue
			}
			if winners == 1 {
				results[i].Wins++
			} else {
				results[i].Ties++
			}
		}
	}
	return results
}

func formatCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
