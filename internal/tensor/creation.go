package tensor

// Scalar creates a rank-0 tensor holding v.
func Scalar(v float64) *Tensor {
	return &Tensor{data: []float64{v}, shape: Shape{}}
}

// Zeros creates a tensor filled with zeros.
// Panics if the shape is invalid.
func Zeros(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	return newTensor(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// OnesLike creates a tensor of ones with the same shape as t.
func OnesLike(t *Tensor) *Tensor {
	return Full(t.shape, 1)
}

// ZerosLike creates a tensor of zeros with the same shape as t.
func ZerosLike(t *Tensor) *Tensor {
	return newTensor(t.shape)
}

// Vector creates a rank-1 tensor from values.
func Vector(values ...float64) *Tensor {
	t := newTensor(Shape{len(values)})
	copy(t.data, values)
	return t
}

// Matrix creates a rank-2 tensor from rows.
// Panics if rows are empty or ragged.
func Matrix(rows [][]float64) *Tensor {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("tensor: Matrix requires at least one non-empty row")
	}
	cols := len(rows[0])
	t := newTensor(Shape{len(rows), cols})
	for i, row := range rows {
		if len(row) != cols {
			panic("tensor: Matrix rows must have equal length")
		}
		copy(t.data[i*cols:], row)
	}
	return t
}
