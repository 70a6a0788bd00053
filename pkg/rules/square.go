package rules

import "fmt"

// Square identifies a square on the board, numbered A1=0, B1=1, .. H1=7,
// A2=8, .. H8=63. This numbering matches a 64-bit bitboard directly: bit i
// of a Bitboard corresponds to square i. The numbering is load-bearing for
// the observation wire protocol (mask/state bitfields from the sensor board
// are bit-exact against this layout), so it must not be reordered.
//
//	A8 B8 C8 D8 E8 F8 G8 H8   56 57 58 59 60 61 62 63
//	A7 B7 C7 D7 E7 F7 G7 H7   48 49 50 51 52 53 54 55
//	A6 B6 C6 D6 E6 F6 G6 H6   40 41 42 43 44 45 46 47
//	A5 B5 C5 D5 E5 F5 G5 H5   32 33 34 35 36 37 38 39
//	A4 B4 C4 D4 E4 F4 G4 H4   24 25 26 27 28 29 30 31
//	A3 B3 C3 D3 E3 F3 G3 H3   16 17 18 19 20 21 22 23
//	A2 B2 C2 D2 E2 F2 G2 H2    8  9 10 11 12 13 14 15
//	A1 B1 C1 D1 E1 F1 G1 H1    0  1  2  3  4  5  6  7
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1

	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2

	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3

	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4

	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5

	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6

	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7

	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	ZeroSquare Square = 0
	NumSquares Square = 64
)

// NewSquare builds a square from file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(r)<<3 | Square(f)
}

// ParseSquare parses a file/rank rune pair, e.g. ('e', '4').
func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %v", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %v", r)
	}
	return NewSquare(file, rank), nil
}

// ParseSquareStr parses an algebraic coordinate, e.g. "e4".
func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

func (s Square) IsValid() bool {
	return s < NumSquares
}

func (s Square) Rank() Rank {
	return Rank(s >> 3)
}

func (s Square) File() File {
	return File(s & 0x7)
}

func (s Square) String() string {
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// Rank represents a chess board rank, Rank1=0 .. Rank8=7.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	ZeroRank Rank = 0
	NumRanks Rank = 8
)

func ParseRank(r rune) (Rank, bool) {
	if r < '1' || r > '8' {
		return 0, false
	}
	return Rank(r - '1'), true
}

func (r Rank) IsValid() bool {
	return r < NumRanks
}

func (r Rank) V() int {
	return int(r)
}

func (r Rank) String() string {
	return fmt.Sprintf("%d", r+1)
}

// File represents a chess board file, FileA=0 .. FileH=7.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	ZeroFile File = 0
	NumFiles File = 8
)

func ParseFile(r rune) (File, bool) {
	switch r {
	case 'a', 'A':
		return FileA, true
	case 'b', 'B':
		return FileB, true
	case 'c', 'C':
		return FileC, true
	case 'd', 'D':
		return FileD, true
	case 'e', 'E':
		return FileE, true
	case 'f', 'F':
		return FileF, true
	case 'g', 'G':
		return FileG, true
	case 'h', 'H':
		return FileH, true
	default:
		return 0, false
	}
}

func (f File) IsValid() bool {
	return f < NumFiles
}

func (f File) V() int {
	return int(f)
}

func (f File) String() string {
	return string(rune('a' + f))
}
