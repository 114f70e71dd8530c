// Package descriptor encodes and decodes the two records a CMSIS-Pack host
// reads directly out of a flash algorithm image file: the FlashDevice record
// in the DeviceData section and the SelfTestInfo record in its own section.
//
// FlashDevice uses C struct layout (natural alignment); SelfTestInfo and its
// items are byte-packed. Both are little-endian and terminate their
// variable-length lists with an all-ones sentinel entry instead of carrying
// a length prefix for the list.
package descriptor
