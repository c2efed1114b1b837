package audio

// SoundEffectLibrary contains the built-in sound effects. IDs match the slice
// index.
var SoundEffectLibrary = []*SoundEffect{
	newSoundEffect(0, "laser", "Shoot", "Short descending zap",
		"0,,.167,.1637,.1361,.7212,.0399,-.363,,,,,,.1314,.0517,,.0154,-.1633,1,,,.0515,,.2"),
	newSoundEffect(1, "hurt", "Hit", "Noisy damage crunch",
		"3,.0704,.0462,.3388,.4099,.1599,,.0109,-.3247,.0006,,-.1592,.4477,.1028,.1787,,-.0157,-.3372,.1896,.1628,,.0016,-.0003,.5"),
	newSoundEffect(2, "impact", "Hit", "Filtered noise thud",
		"3,.1,.3899,.1901,.2847,.0399,,.0007,.1492,,,-.9636,,,-.3893,.1636,-.0047,.7799,.1099,-.1103,.5924,.484,.1547,1"),
	newSoundEffect(3, "power-on", "UI", "Rising repeated sweep",
		"1,,.0398,,.4198,.3891,,.4383,,,,,,,,.616,,,1,,,,,.5"),
	newSoundEffect(4, "power-off", "UI", "Falling repeated sweep",
		"1,.1299,.27,.1299,.4199,.1599,,.4383,,,,-.6399,,,-.4799,.7099,,,1,,,,,.5"),
	newSoundEffect(5, "powerup", "Pickup", "Warbling upgrade jingle",
		"0,.43,.1099,.67,.4499,.6999,,-.2199,-.2,.5299,.5299,-.0399,.3,,.0799,.1899,-.1194,.2327,.8815,-.2364,.43,.2099,-.5799,.5"),
	newSoundEffect(6, "coin", "Pickup", "Bright arpeggiated pickup",
		"0,.09,.1099,.0733,.0854,.1099,,-.1891,.827,,,.9826,,,.4642,,-.1194,.2327,.8815,-.2364,.0992,.0076,.8314,.5"),
	newSoundEffect(7, "alarm", "UI", "Long resonant siren",
		"1,.1,1,.1901,.2847,.3199,,.0007,.1492,,,-.9636,,,-.3893,.1636,-.0047,.6646,.9653,-.1103,.5924,.484,.1547,.6"),
	newSoundEffect(8, "explosion", "Explosion", "Wide noise burst",
		"3,.2,.1899,.4799,.91,.0599,,-.2199,-.2,.5299,.5299,-.0399,.3,,.0799,.1899,-.1194,.2327,.8815,-.2364,.43,.2099,-.5799,.5"),
	newSoundEffect(9, "pop", "Explosion", "Small dry noise pop",
		"3,,.3626,.5543,.191,.0731,,-.3749,,,,,,,,,,,1,,,,,.4"),
	newSoundEffect(10, "blaster", "Shoot", "Heavy flanged shot",
		"1,.071,.3474,.0506,.1485,.5799,.2,-.2184,-.1405,.1681,,-.1426,,.9603,-.0961,,.2791,-.8322,.2832,.0009,,.0088,-.0082,.3"),
	newSoundEffect(11, "bomb", "Explosion", "Deep rumbling blast",
		"3,.05,.3365,.4591,.4922,.1051,,.015,,,,-.6646,.7394,,,,,,1,,,,,.7"),
	newSoundEffect(12, "game-over", "UI", "Slow wobbling fall",
		"1,1,.09,.5,.4111,.506,.0942,.1499,.0199,.8799,.1099,-.68,.0268,.1652,.62,.6999,-.0399,.4799,.5199,-.0429,.0599,.8199,-.4199,.7"),
	newSoundEffect(13, "pew", "Shoot", "Soft sine blip shot",
		"2,,.1199,.15,.1361,.5,.0399,-.363,-.4799,,,,,.1314,.0517,,.0154,-.1633,1,,,.0515,,.2"),
	newSoundEffect(14, "warning", "UI", "Pulsing low-energy tone",
		"0,.9705,.0514,.5364,.5273,.4816,.0849,.1422,.205,.7714,.1581,-.7685,.0822,.2147,.6062,.7448,-.0917,.4009,.6251,.1116,.0573,.9005,-.3763,.3"),
	newSoundEffect(15, "blip", "UI", "Plain square blip",
		"0,,.2863,,.3048,.751,.2,-.316,,,,,,.4416,.1008,,,,1,,,.2962,,.3"),
	newSoundEffect(16, "lock-on", "UI", "Rising electronic tone",
		"1,.0099,.15,,.2299,.45,,.1799,.48,.5099,.4599,-.4399,.6299,,,,,.0099,.6599,.0099,,.1699,,.4"),
	newSoundEffect(17, "hum", "Ambient", "Magnetic engine hum",
		"2,.01,.12,.03,.15,.18,,,.02,,.08,.12,.45,,,,,.08,.6,.15,.4,.03,,.3"),
}
