package strategy

// The basic-strategy tables below are dense lookup grids indexed by dealer
// upcard (1=Ace..10), one row per hand total/pair. Column 0 is an unused
// placeholder so the dealer rank can index the row directly. The letter
// codes are an internal encoding carried over from the reference strategy
// tables this engine was ported from:
//
//	=  stand                       +  hit
//	D  double, else hit            d  double, else stand
//	V  split                       *  split only if DAS, else hit/stand
//	S  surrender, else hit         U  surrender late/H17, else hit
//	E  surrender early, else hit   u  surrender late/H17, else stand
//	h  stand S17 / double H17      &  double AHC+H17, else hit
//	?  double AHC, else hit        @  split AHC+S17, else hit
//
// Row 0 of hardTable is hand total 20, decreasing to row 16 (total 4). Row
// 0 of softTable is soft companion total 10 (i.e. A+10), decreasing to row
// 9 (A+A, read only when splitting the pair is not offered). Row 0
// of pairsTable is a pair of tens, decreasing to row 9 (a pair of aces).
var hardTable = [17]string{
	" ==========", // 20
	" ==========", // 19
	" ==========", // 18
	" u=========", // 17
	" S=====++SS", // 16
	" U=====+++S", // 15
	" E=====+++E", // 14
	" E=====++++", // 13
	" E++===++++", // 12
	" &DDDDDDDD?", // 11
	" +DDDDDDDD+", // 10
	" ++DDDD++++", // 9
	" ++++++++++", // 8
	" ++++++++++", // 7
	" ++++++++++", // 6
	" ++++++++++", // 5
	" ++++++++++", // 4
}

var softTable = [10]string{
	" ==========", // A+10
	" ==========", // A+9
	" =====h====", // A+8
	" +hdddd==++", // A+7
	" ++DDDD++++", // A+6
	" +++DDD++++", // A+5
	" +++DDD++++", // A+4
	" ++++DD++++", // A+3
	" ++++DD++++", // A+2
	" +++++D++++", // A+A (only reached when splitting is not offered)
}

var pairsTable = [10]string{
	"           ", // T/T
	"  VVVVV VV ", // 9/9
	" @VVVVVVVV?", // 8/8
	"  VVVVVV   ", // 7/7
	"  *VVVV    ", // 6/6
	"           ", // 5/5
	"     **    ", // 4/4
	"  **VVVV   ", // 3/3
	"  **VVVV   ", // 2/2
	" ?VVVVVVVVV", // A/A
}
