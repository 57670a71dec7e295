package game

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zlitery/wordgrid/game/board"
	"github.com/zlitery/wordgrid/game/tile"
)

type (
	// Move is the record of one committed action.
	Move struct {
		// GameID is the game the move was made in.
		GameID ID `json:"game_id"`
		// UserID is the player who moved.
		UserID int64 `json:"user_id"`
		// MoveNumber is the turn counter at commit time, starting at 0 with no gaps.
		MoveNumber int `json:"move_number"`
		// Word is the longest word the move formed, empty for passes and exchanges.
		Word string `json:"word,omitempty"`
		// Tiles records which tiles the move used.
		Tiles PlayedTiles `json:"tiles_played"`
		// Score is the points the move earned.
		Score int `json:"score"`
		// IsPass marks moves that forfeited the turn.
		IsPass bool `json:"is_pass,omitempty"`
		// IsExchange marks moves that swapped tiles with the bag.
		IsExchange bool `json:"is_exchange,omitempty"`
		// CreatedAt is when the move was committed, in seconds since the unix epoch.
		CreatedAt int64 `json:"created_at"`
	}

	// PlayedTiles records the tiles a move used.
	PlayedTiles struct {
		// Placed lists the board placements of a word move.
		Placed []tile.Placement `json:"placed,omitempty"`
		// Exchanged lists the letters an exchange returned to the bag.
		Exchanged []tile.Letter `json:"exchanged,omitempty"`
	}

	// placedWord is a word on the board with the cells that spell it.
	placedWord struct {
		text  string
		cells []wordCell
	}

	wordCell struct {
		row, col int
		tile     tile.Tile
	}
)

// Place plays tiles from the requester's rack onto the board, validating and
// scoring the words they form with tiles already present.  A rejected move
// leaves the game unchanged.
func (g *Game) Place(ctx context.Context, userID int64, placements []tile.Placement) (*Move, error) {
	p, err := g.turnPlayer(userID)
	if err != nil {
		return nil, err
	}
	if len(placements) == 0 {
		return nil, invalidInput("No tiles played")
	}
	rackLetters := make([]tile.Letter, len(placements))
	for i, pl := range placements {
		if pl.Blank && (pl.Letter == tile.Blank || !g.Alphabet.Has(pl.Letter)) {
			return nil, invalidInput(fmt.Sprintf("Invalid blank letter: %v", pl.Letter))
		}
		rackLetters[i] = pl.RackLetter()
	}
	newRack, err := removeFromRack(p.Rack, rackLetters)
	if err != nil {
		return nil, err
	}
	// Lay the tiles on a copy of the board so rejections change nothing.
	b := g.board.Clone()
	for _, pl := range placements {
		if !board.InBounds(pl.Row, pl.Col) {
			return nil, invalidInput(fmt.Sprintf("Position (%v, %v) off board", pl.Row, pl.Col))
		}
		if b.Occupied(pl.Row, pl.Col) {
			return nil, invalidInput(fmt.Sprintf("Position (%v, %v) already occupied", pl.Row, pl.Col))
		}
		if err := b.Place(pl.Tile(), pl.Row, pl.Col); err != nil {
			return nil, fmt.Errorf("placing tile: %w", err)
		}
	}
	words := findWords(b, placements)
	if len(words) == 0 {
		return nil, invalidInput("No valid words formed")
	}
	for _, w := range words {
		ok, err := g.Lexicon.Contains(ctx, w.text)
		if err != nil {
			return nil, fmt.Errorf("checking word %q: %w", w.text, err)
		}
		if !ok {
			return nil, invalidInput("Invalid word: " + w.text)
		}
	}
	score := g.scoreMove(words, placements)
	p.Rack = append(newRack, g.bag.Draw(len(placements))...)
	p.Score += score
	g.board = b
	m := g.record(userID, Move{
		Word:  longestWord(words),
		Tiles: PlayedTiles{Placed: placements},
		Score: score,
	})
	if len(p.Rack) == 0 && g.bag.Size() == 0 {
		g.finish()
	}
	return m, nil
}

// Pass forfeits the requester's turn.
func (g *Game) Pass(userID int64) (*Move, error) {
	if _, err := g.turnPlayer(userID); err != nil {
		return nil, err
	}
	m := g.record(userID, Move{
		IsPass: true,
	})
	return m, nil
}

// Exchange swaps letters from the requester's rack for new tiles.  The
// letters go back in the bag before the replacements are drawn, so some may
// be drawn right back.  A rejected exchange leaves the game unchanged.
func (g *Game) Exchange(userID int64, letters []tile.Letter) (*Move, error) {
	p, err := g.turnPlayer(userID)
	if err != nil {
		return nil, err
	}
	if len(letters) == 0 {
		return nil, invalidInput("No tiles to exchange")
	}
	newRack, err := removeFromRack(p.Rack, letters)
	if err != nil {
		return nil, err
	}
	if g.bag.Size() < len(letters) {
		return nil, invalidInput("Not enough tiles in bag to exchange")
	}
	g.bag.Return(letters)
	p.Rack = append(newRack, g.bag.Draw(len(letters))...)
	m := g.record(userID, Move{
		IsExchange: true,
		Tiles:      PlayedTiles{Exchanged: letters},
	})
	return m, nil
}

// record stamps the move and advances the turn.  Move numbers stay dense
// because the turn counter moves by exactly one per committed move.
func (g *Game) record(userID int64, m Move) *Move {
	m.GameID = g.id
	m.UserID = userID
	m.MoveNumber = g.currentTurn
	m.CreatedAt = g.TimeFunc()
	g.currentTurn++
	return &m
}

// removeFromRack returns a copy of the rack without the letters.  The rack
// must hold every letter, counting duplicates.
func removeFromRack(rack []tile.Letter, letters []tile.Letter) ([]tile.Letter, error) {
	counts := make(map[tile.Letter]int, len(rack))
	for _, l := range rack {
		counts[l]++
	}
	remove := make(map[tile.Letter]int, len(letters))
	for _, l := range letters {
		remove[l]++
		if remove[l] > counts[l] {
			return nil, invalidInput(fmt.Sprintf("Not enough %v tiles in rack", l))
		}
	}
	newRack := make([]tile.Letter, 0, len(rack)-len(letters))
	for _, l := range rack {
		if remove[l] > 0 {
			remove[l]--
			continue
		}
		newRack = append(newRack, l)
	}
	return newRack, nil
}

// findWords returns the words of two or more letters formed by the
// placements, which must already be on the board: the word along the move's
// axis extended over adjacent tiles, and the perpendicular word through each
// placed tile.  No words are returned when the placements are not in one row
// or column or do not span a contiguous run with the tiles already present.
func findWords(b *board.Board, placements []tile.Placement) []placedWord {
	row0, col0 := placements[0].Row, placements[0].Col
	sameRow, sameCol := true, true
	minRow, maxRow, minCol, maxCol := row0, row0, col0, col0
	for _, p := range placements[1:] {
		if p.Row != row0 {
			sameRow = false
		}
		if p.Col != col0 {
			sameCol = false
		}
		if p.Row < minRow {
			minRow = p.Row
		}
		if p.Row > maxRow {
			maxRow = p.Row
		}
		if p.Col < minCol {
			minCol = p.Col
		}
		if p.Col > maxCol {
			maxCol = p.Col
		}
	}
	var words []placedWord
	appendWord := func(w placedWord) {
		if len(w.cells) > 1 {
			words = append(words, w)
		}
	}
	switch {
	case sameRow:
		for c := minCol; c <= maxCol; c++ {
			if !b.Occupied(minRow, c) {
				return nil
			}
		}
		appendWord(wordAt(b, minRow, minCol, true))
		for _, p := range placements {
			appendWord(wordAt(b, p.Row, p.Col, false))
		}
	case sameCol:
		for r := minRow; r <= maxRow; r++ {
			if !b.Occupied(r, minCol) {
				return nil
			}
		}
		appendWord(wordAt(b, minRow, minCol, false))
		for _, p := range placements {
			appendWord(wordAt(b, p.Row, p.Col, true))
		}
	}
	return words
}

// wordAt returns the maximal run of tiles through the position in the
// direction, horizontal or vertical.
func wordAt(b *board.Board, row, col int, horizontal bool) placedWord {
	dr, dc := 1, 0
	if horizontal {
		dr, dc = 0, 1
	}
	r, c := row, col
	for b.Occupied(r-dr, c-dc) {
		r, c = r-dr, c-dc
	}
	var w placedWord
	var text strings.Builder
	for {
		t, ok := b.At(r, c)
		if !ok {
			break
		}
		w.cells = append(w.cells, wordCell{
			row:  r,
			col:  c,
			tile: t,
		})
		text.WriteString(t.Letter.String())
		r, c = r+dr, c+dc
	}
	w.text = text.String()
	return w
}

// scoreMove totals the scores of the words.  Every cell of a word counts,
// blanks for zero, but premiums only fire under tiles placed this move.
// Playing a full rack earns the bingo bonus on top.
func (g *Game) scoreMove(words []placedWord, placements []tile.Placement) int {
	placed := make(map[[2]int]bool, len(placements))
	for _, p := range placements {
		placed[[2]int{p.Row, p.Col}] = true
	}
	total := 0
	for _, w := range words {
		wordScore, wordMultiplier := 0, 1
		for _, c := range w.cells {
			letterScore := 0
			if !c.tile.Blank {
				letterScore = g.Alphabet.Value(c.tile.Letter)
			}
			if placed[[2]int{c.row, c.col}] {
				premium := board.PremiumAt(c.row, c.col)
				letterScore *= premium.LetterMultiplier()
				wordMultiplier *= premium.WordMultiplier()
			}
			wordScore += letterScore
		}
		total += wordScore * wordMultiplier
	}
	if len(placements) == RackSize {
		total += BingoBonus
	}
	return total
}

// longestWord returns the text of the longest word, the first of them on ties.
func longestWord(words []placedWord) string {
	longest, longestLen := "", 0
	for _, w := range words {
		if n := utf8.RuneCountInString(w.text); n > longestLen {
			longest, longestLen = w.text, n
		}
	}
	return longest
}
