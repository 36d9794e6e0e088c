// Package pixel implements the frame buffer layouts used by SSD1xxx OLED controllers.
//
// Two layouts are provided: [MonoVerticalLSBImage], the 1-bit paged layout where each
// byte holds a column of 8 vertically stacked pixels, and [Gray4Image], the 4-bit packed
// layout where each byte holds two horizontally adjacent pixels. Both are compatible with
// Go's native [image.Image] / [draw.Image] interfaces.
package pixel
