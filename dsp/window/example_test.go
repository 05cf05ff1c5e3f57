package window

import "fmt"

func ExampleGenerate() {
	w := Generate(TypeHann, 4)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleWelch() {
	w, _ := Welch(5)
	fmt.Printf("%.2f %.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3], w[4])
	// Output:
	// 0.00 0.75 1.00 0.75 0.00
}

func ExampleMeanOverlapGain() {
	w, _ := Welch(1024)
	g, _ := MeanOverlapGain(w, 256)
	fmt.Printf("%.3f\n", g)
	// Output:
	// 2.131
}
