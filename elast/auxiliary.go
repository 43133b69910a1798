// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elast

// Calc_K_from_Enu returns the bulk modulus K for given Young's modulus and Poisson's coefficient
func Calc_K_from_Enu(E, ν float64) float64 {
	return E / (3.0 * (1.0 - 2.0*ν))
}

// Calc_G_from_Enu returns the shear modulus G for given Young's modulus and Poisson's coefficient
func Calc_G_from_Enu(E, ν float64) float64 {
	return E / (2.0 * (1.0 + ν))
}

// Calc_lam_from_Enu returns Lamé's first parameter λ for given Young's modulus and Poisson's coefficient
func Calc_lam_from_Enu(E, ν float64) float64 {
	return E * ν / ((1.0 + ν) * (1.0 - 2.0*ν))
}

// Calc_lam_from_Gnu returns Lamé's first parameter λ for given shear modulus and Poisson's coefficient
func Calc_lam_from_Gnu(G, ν float64) float64 {
	return 2.0 * G * ν / (1.0 - 2.0*ν)
}

// Calc_E_from_KG returns Young's modulus for given bulk and shear moduli
func Calc_E_from_KG(K, G float64) float64 {
	return 9.0 * K * G / (3.0*K + G)
}

// Calc_nu_from_KG returns Poisson's coefficient for given bulk and shear moduli
func Calc_nu_from_KG(K, G float64) float64 {
	return (3.0*K - 2.0*G) / (6.0*K + 2.0*G)
}

// Calc_nu_from_lamG returns Poisson's coefficient for given Lamé parameters
func Calc_nu_from_lamG(lam, G float64) float64 {
	return lam / (2.0 * (lam + G))
}
