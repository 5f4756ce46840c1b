// Package generation turns a prompt into one image per requested world.
//
// It defines the Provider boundary that external image models (Replicate,
// Gemini Imagen) implement, the provider error taxonomy, and the Service that
// validates requests, falls back to placeholder images in demo mode, and fans
// a prompt out across every world either in parallel or sequentially.
package generation
