package drill

import "math/rand/v2"

// bank is the static per-subject problem set used when the completion
// service is not configured or a deterministic source is wanted.
var bank = map[Subject][]Drill{
	SubjectAlgebra: {
		{Question: "Solve for x: 2x + 5 = 13", Answer: "4"},
		{Question: "Find x: 3(x - 4) = 15", Answer: "9"},
		{Question: "Solve the equation: 5x + 2 = 3x - 6", Answer: "-4"},
		{Question: "If 2(x + 3) = 16, what is x?", Answer: "5"},
	},
	SubjectGeometry: {
		{Question: "Calculate the area of a triangle with base 6 and height 8", Answer: "24"},
		{Question: "Find the perimeter of a rectangle with length 10 and width 4", Answer: "28"},
		{Question: "What is the area of a circle with radius 5?", Answer: "78.54"},
		{Question: "Calculate the volume of a cube with side length 3", Answer: "27"},
	},
	SubjectArithmetic: {
		{Question: "What is 15% of 80?", Answer: "12"},
		{Question: "Calculate: 123 × 12", Answer: "1476"},
		{Question: "Divide 156 by 12", Answer: "13"},
		{Question: "What is the sum of 1/4 and 2/3?", Answer: "0.917"},
	},
	SubjectStatistics: {
		{Question: "Calculate the mean of the numbers: 4, 8, 15, 16, 23", Answer: "13.2"},
		{Question: "Find the median of: 7, 12, 3, 9, 15, 18", Answer: "10.5"},
		{Question: "What is the mode of: 2, 4, 4, 6, 8, 4, 10?", Answer: "4"},
		{Question: "Calculate the range of: 15, 25, 35, 45, 55", Answer: "40"},
	},
}

// BankDrill returns a random problem from the static bank. The second
// return is false for an unknown subject.
func BankDrill(subject Subject) (Drill, bool) {
	drills, ok := bank[subject]
	if !ok || len(drills) == 0 {
		return Drill{}, false
	}
	return drills[rand.IntN(len(drills))], true
}
