// Package ramify computes the ramification filtration of weak p-adic Galois
// extensions. An extension L/Q_p is weakly Galois if its base change to the
// maximal unramified extension is Galois; its higher ramification groups are
// then read off the Newton polygon of the ramification polynomial of the
// totally ramified part, giving the jumps of the filtration in lower and
// upper numbering.
package ramify
