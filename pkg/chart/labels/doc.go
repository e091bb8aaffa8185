// Package labels turns relative values into segment labels whose
// percentages add up to exactly 100 for every year.
//
// Rounding each share independently rarely sums to 100: three equal thirds
// round to 33+33+33. [Reconcile] rounds half to even, measures the drift from
// 100 and assigns all of it to the first category with the largest rounding
// error:
//
//	pct, _ := labels.Reconcile([]float64{0.3333, 0.3333, 0.3333})
//	// pct == []int{34, 33, 33}
//
// [Build] applies the reconciler to every year of a normalized table and
// pairs each percentage with its absolute count, producing labels such as
// "46% (12)".
package labels
