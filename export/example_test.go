// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package export_test

import (
	"os"

	"github.com/born-ml/vizml/autodiff"
	"github.com/born-ml/vizml/export"
)

func ExampleWriteMermaid() {
	x := autodiff.Input("x")
	y := autodiff.Output(x.MulScalar(3), "y")

	g, _ := autodiff.Build(y)
	ev, _ := autodiff.Evaluate(g, autodiff.FeedScalars(map[string]float64{"x": 2}))
	grads, _ := autodiff.Differentiate(g, ev, y)

	d, _ := export.Snapshot(g, ev, grads, export.DefaultOptions())
	_ = export.WriteMermaid(os.Stdout, d, "LR")
	// Output:
	// flowchart LR
	//     n0["x<br/>= 2<br/>∇ 3"]:::input
	//     n1["3<br/>= 3<br/>∇ 2"]:::constant
	//     n2["*<br/>= 6<br/>∇ 1"]:::operation
	//     n3["y<br/>= 6<br/>∇ 1"]:::output
	//
	//     n0 -->|"2 / ∇ 3"| n2
	//     n1 -->|"3 / ∇ 2"| n2
	//     n2 -->|"6 / ∇ 1"| n3
	//
	//     classDef input fill:#74b9ff,stroke:#333
	//     classDef variable fill:#ffd93d,stroke:#333
	//     classDef constant fill:#dfe6e9,stroke:#333
	//     classDef operation fill:#ffffff,stroke:#333
	//     classDef output fill:#ff6b6b,stroke:#333
}
